package models

import (
	"strconv"
	"time"
)

// FieldKind tells the prompt layer how to collect a value.
type FieldKind int

const (
	Text FieldKind = iota
	Number
	Bool
	Date
	Multiline
)

// Field describes one editable attribute of an entity form.
type Field struct {
	Name     string // JSON attribute name
	Label    string
	Required bool
	Kind     FieldKind
}

func ClientFields() []Field {
	return []Field{
		{Name: "name", Label: "Name", Required: true},
		{Name: "email", Label: "Email", Required: true},
		{Name: "cpf", Label: "CPF", Required: true},
		{Name: "phone", Label: "Phone"},
		{Name: "city", Label: "City"},
	}
}

func ProductFields() []Field {
	return []Field{
		{Name: "name", Label: "Name", Required: true},
		{Name: "brand", Label: "Brand"},
		{Name: "category", Label: "Category"},
		{Name: "active", Label: "Active", Kind: Bool},
	}
}

func InvoiceFields() []Field {
	return []Field{
		{Name: "number", Label: "Number", Required: true},
		{Name: "cpf", Label: "CPF", Required: true},
		{Name: "store", Label: "Store"},
		{Name: "total", Label: "Total", Kind: Number},
		{Name: "issuedAt", Label: "Issued at", Kind: Date},
	}
}

func DrawNumberFields() []Field {
	return []Field{
		{Name: "number", Label: "Number", Required: true},
		{Name: "cpf", Label: "CPF", Required: true},
		{Name: "name", Label: "Participant"},
		{Name: "invoiceNumber", Label: "Invoice number"},
	}
}

func OpportunityFields() []Field {
	return []Field{
		{Name: "cpf", Label: "CPF", Required: true},
		{Name: "name", Label: "Participant"},
		{Name: "status", Label: "Status"},
		{Name: "quantity", Label: "Quantity", Kind: Number},
	}
}

func VoucherFields() []Field {
	return []Field{
		{Name: "code", Label: "Code", Required: true},
		{Name: "cpf", Label: "CPF"},
		{Name: "status", Label: "Status"},
		{Name: "value", Label: "Value", Kind: Number},
	}
}

func PageContentFields() []Field {
	return []Field{
		{Name: "slug", Label: "Slug", Required: true},
		{Name: "title", Label: "Title", Required: true},
		{Name: "body", Label: "Body", Kind: Multiline},
		{Name: "published", Label: "Published", Kind: Bool},
	}
}

// Table columns and row renderers, one pair per entity.

var ClientColumns = []string{"ID", "NAME", "EMAIL", "CPF", "PHONE", "CITY", "CREATED"}

func ClientRow(c Client) []string {
	return []string{c.ID, c.Name, c.Email, c.CPF, c.Phone, c.City, fmtTime(c.CreatedAt)}
}

var ProductColumns = []string{"ID", "NAME", "BRAND", "CATEGORY", "ACTIVE", "CREATED"}

func ProductRow(p Product) []string {
	return []string{p.ID, p.Name, p.Brand, p.Category, fmtBool(p.Active), fmtTime(p.CreatedAt)}
}

var InvoiceColumns = []string{"ID", "NUMBER", "CPF", "STORE", "TOTAL", "STATUS", "ISSUED"}

func InvoiceRow(i Invoice) []string {
	return []string{i.ID, i.Number, i.CPF, i.Store, fmtMoney(i.Total), i.Status, fmtTime(i.IssuedAt)}
}

var DrawNumberColumns = []string{"ID", "NUMBER", "CPF", "NAME", "INVOICE", "CREATED"}

func DrawNumberRow(d DrawNumber) []string {
	return []string{d.ID, d.Number, d.CPF, d.Name, d.InvoiceNumber, fmtTime(d.CreatedAt)}
}

var OpportunityColumns = []string{"ID", "CPF", "NAME", "STATUS", "QTY", "CREATED"}

func OpportunityRow(o Opportunity) []string {
	return []string{o.ID, o.CPF, o.Name, o.Status, strconv.Itoa(o.Quantity), fmtTime(o.CreatedAt)}
}

var VoucherColumns = []string{"ID", "CODE", "CPF", "STATUS", "VALUE", "REDEEMED", "CREATED"}

func VoucherRow(v Voucher) []string {
	redeemed := "-"
	if v.RedeemedAt != nil {
		redeemed = fmtTime(*v.RedeemedAt)
	}
	return []string{v.ID, v.Code, v.CPF, v.Status, fmtMoney(v.Value), redeemed, fmtTime(v.CreatedAt)}
}

var PageContentColumns = []string{"ID", "SLUG", "TITLE", "PUBLISHED", "UPDATED"}

func PageContentRow(p PageContent) []string {
	return []string{p.ID, p.Slug, p.Title, fmtBool(p.Published), fmtTime(p.UpdatedAt)}
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func fmtBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func fmtMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
