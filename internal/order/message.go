// Package order turns a cart or single product into a chat hand-off: a
// formatted order message plus a deep link into WhatsApp or Instagram where
// the shopper completes the purchase. There is no checkout or payment here.
package order

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stylehaus/storefront/internal/domain"
)

// Formatter renders order messages in chat markdown. Prices carry the
// configured currency symbol with grouped digits.
type Formatter struct {
	storeName      string
	currencySymbol string
	printer        *message.Printer
	now            func() time.Time
}

// NewFormatter creates a message formatter. A nil now defaults to the wall
// clock; tests inject a fixed time.
func NewFormatter(storeName, currencySymbol string, now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{
		storeName:      storeName,
		currencySymbol: currencySymbol,
		printer:        message.NewPrinter(language.English),
		now:            now,
	}
}

// Currency renders an amount with the currency symbol and grouped digits.
func (f *Formatter) Currency(amount int64) string {
	return f.currencySymbol + f.printer.Sprintf("%d", amount)
}

// OrderMessage renders the full-cart order message.
func (f *Formatter) OrderMessage(items []domain.LineItem, profile *domain.UserProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ *New Order from %s Website*\n\n", f.storeName)
	f.writeCustomerBlock(&b, profile)

	for i := range items {
		item := &items[i]
		price := item.Product.EffectivePrice()
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Product.Name)
		fmt.Fprintf(&b, "   Size: %s\n", item.Size)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Price: %s each\n", f.Currency(price))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", f.Currency(item.Subtotal()))
	}

	var total int64
	for i := range items {
		total += items[i].Subtotal()
	}

	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", f.Currency(total))
	fmt.Fprintf(&b, "📅 Order Date: %s\n", f.now().Format("02/01/2006"))
	b.WriteString("🌐 Ordered via: Website")

	return b.String()
}

// QuickBuyMessage renders the single-product buy-now message. It shows the
// full price and the effective price separately so the discount is visible
// in the chat.
func (f *Formatter) QuickBuyMessage(product domain.Product, size string, profile *domain.UserProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ *Quick Buy - %s*\n\n", f.storeName)
	f.writeCustomerBlock(&b, profile)

	fmt.Fprintf(&b, "*%s*\n", product.Name)
	fmt.Fprintf(&b, "Size: %s\n", size)
	fmt.Fprintf(&b, "Price: %s\n\n", f.Currency(product.SellingPrice))
	fmt.Fprintf(&b, "Special Price: %s\n\n", f.Currency(product.EffectivePrice()))
	fmt.Fprintf(&b, "📅 Date: %s\n", f.now().Format("02/01/2006"))
	fmt.Fprintf(&b, "(%s)\n", product.ID)
	b.WriteString("🌐 Ordered via: Website")

	return b.String()
}

func (f *Formatter) writeCustomerBlock(b *strings.Builder, profile *domain.UserProfile) {
	if profile == nil {
		return
	}

	b.WriteString("👤 *Customer Details:*\n")
	fmt.Fprintf(b, "Name: %s\n", profile.Name)
	fmt.Fprintf(b, "Mobile: %s\n", profile.Mobile)
	if profile.AlternativeNumber != "" {
		fmt.Fprintf(b, "Alt Mobile: %s\n", profile.AlternativeNumber)
	}
	if profile.Email != "" {
		fmt.Fprintf(b, "Email: %s\n", profile.Email)
	}
	fmt.Fprintf(b, "Address: %s\n", profile.FullAddress)
	fmt.Fprintf(b, "Pincode: %s\n\n", profile.Pincode)
}
