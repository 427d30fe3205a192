// Package whatsapp builds WhatsApp click-to-chat links. No API calls are
// made anywhere in this package: a link only opens a pre-filled chat in the
// visitor's own WhatsApp client, so delivery is entirely the browser's job.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// defaultCountryCode is assumed for local numbers submitted without one.
	defaultCountryCode = "91"

	chatLinkBase = "https://wa.me/"
)

// NormalizePhone converts a raw phone number into the bare digit string
// wa.me expects. Spaces, hyphens and parentheses are stripped, a leading
// national trunk zero is removed, and numbers of ten digits or fewer
// without an explicit + prefix get the default country code. The + itself
// is always stripped from the result.
func NormalizePhone(raw string) string {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)

	phone = strings.TrimPrefix(phone, "0")

	if !strings.HasPrefix(phone, "+") {
		if len(phone) <= 10 {
			phone = "+" + defaultCountryCode + phone
		} else {
			phone = "+" + phone
		}
	}

	return strings.ReplaceAll(phone, "+", "")
}

// BuildChatLink returns a click-to-chat URL for the given phone number with
// message pre-filled. The message is percent-encoded; spaces become %20
// rather than + so the text survives wa.me's query parsing verbatim.
func BuildChatLink(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return chatLinkBase + NormalizePhone(phone) + "?text=" + encoded
}

// OrderDetails carries the submitted custom-order fields into the outgoing
// message. Optional fields may be empty; they render as sentinels.
type OrderDetails struct {
	ProductType string
	Material    string
	Color       string
	Occasion    string
	Size        string
	Notes       string
	Name        string
	Phone       string
}

// CustomOrderNotification builds the owner-addressed chat link announcing a
// new custom order.
func CustomOrderNotification(ownerPhone string, d OrderDetails) string {
	message := fmt.Sprintf(`🎁 NEW CUSTOM ORDER 🎁

📋 Order Details:
• Product Type: %s
• Material: %s
• Color: %s
• Occasion: %s
• Size: %s
• Notes: %s

👤 Customer Info:
• Name: %s
• Phone: %s

Please contact the customer to confirm the order.`,
		orDefault(d.ProductType, "N/A"),
		orDefault(d.Material, "Not specified"),
		orDefault(d.Color, "Not specified"),
		orDefault(d.Occasion, "Not specified"),
		orDefault(d.Size, "Not specified"),
		orDefault(d.Notes, "None"),
		orDefault(d.Name, "N/A"),
		orDefault(d.Phone, "N/A"),
	)

	return BuildChatLink(ownerPhone, message)
}

// OrderConfirmation builds a customer-addressed chat link confirming that a
// custom order was received. The public intake flow never calls this; it
// backs the per-order contact links on the admin dashboard.
func OrderConfirmation(customerPhone string, orderID int, productType string) string {
	message := fmt.Sprintf(`Thank you for your custom order! 🎉

Your Order ID: %d
Product Type: %s

We have received your order and will contact you shortly to confirm the details and discuss pricing.

Thank you for choosing us! 🧺`, orderID, productType)

	return BuildChatLink(customerPhone, message)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
