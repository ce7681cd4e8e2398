package terms

import "github.com/danmuck/petty/internal/symbols"

// Defaults returns the brand terms written on first activation.
func Defaults() Mapping {
	reg := symbols.Registered.Entity()
	tm := symbols.Trademark.Entity()
	return Mapping{
		{Term: "WordPress", Symbol: reg},
		{Term: "Woo", Symbol: reg},
		{Term: "WooCommerce", Symbol: reg},
		{Term: "WooExpert", Symbol: reg},
		{Term: "Woo Partner", Symbol: tm},
		{Term: "WooPay", Symbol: tm},
		{Term: "WooPayments", Symbol: tm},
		{Term: "WooThemes", Symbol: reg},
		{Term: "Hosted Woo", Symbol: tm},
		{Term: "Managed Woo", Symbol: tm},
		{Term: "Managed WordPress", Symbol: tm},
	}
}
