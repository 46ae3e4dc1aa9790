// Package models defines the entities managed by the admin client and the
// display/form metadata the generic engine and CLI views are driven by.
package models

import "time"

// Client is a registered draw participant.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is an item whose purchase earns draw opportunities.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Invoice is a registered purchase receipt. Invoices are append-only:
// once registered they are never edited.
type Invoice struct {
	ID       string    `json:"id"`
	Number   string    `json:"number"`
	CPF      string    `json:"cpf"`
	Store    string    `json:"store"`
	Total    float64   `json:"total"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issuedAt"`
}

// DrawNumber is a lucky number assigned to a participant.
type DrawNumber struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	CPF           string    `json:"cpf"`
	Name          string    `json:"name"`
	InvoiceNumber string    `json:"invoiceNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Opportunity is a participant's chance to play.
type Opportunity struct {
	ID        string    `json:"id"`
	CPF       string    `json:"cpf"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Voucher is a prize voucher issued to a participant.
type Voucher struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	CPF        string     `json:"cpf"`
	Status     string     `json:"status"`
	Value      float64    `json:"value"`
	RedeemedAt *time.Time `json:"redeemedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// PageContent is an editable static page of the public site.
type PageContent struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updatedAt"`
}
