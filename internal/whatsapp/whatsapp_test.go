package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten digit local", "9876543210", "919876543210"},
		{"leading trunk zero", "09876543210", "919876543210"},
		{"spaces and hyphens", "98765 432-10", "919876543210"},
		{"parentheses", "(987) 6543210", "919876543210"},
		{"explicit plus country code", "+449876543210", "449876543210"},
		{"long number without plus", "449876543210", "449876543210"},
		{"short number", "12345", "9112345"},
		{"empty", "", "91"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.raw); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildChatLinkEncoding(t *testing.T) {
	message := "hello world\nsecond line & more"
	link := BuildChatLink("9876543210", message)

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, " ") || strings.Contains(link, "\n") {
		t.Errorf("link contains unencoded whitespace: %s", link)
	}
	if !strings.Contains(link, "%20") {
		t.Errorf("spaces should be percent-encoded as %%20: %s", link)
	}

	// Round trip: decoding the text parameter must yield the original message.
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != message {
		t.Errorf("round trip mismatch: got %q, want %q", got, message)
	}
}

func TestCustomOrderNotification(t *testing.T) {
	link := CustomOrderNotification("9863824320", OrderDetails{
		ProductType: "Basket",
		Name:        "Asha",
		Phone:       "9876543210",
	})

	if !strings.HasPrefix(link, "https://wa.me/919863824320?text=") {
		t.Fatalf("notification should address the owner number: %s", link)
	}

	u, _ := url.Parse(link)
	body := u.Query().Get("text")
	for _, want := range []string{
		"Product Type: Basket",
		"Name: Asha",
		"Phone: 9876543210",
		"Material: Not specified",
		"Notes: None",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message body missing %q:\n%s", want, body)
		}
	}
}

func TestOrderConfirmation(t *testing.T) {
	link := OrderConfirmation("9876543210", 42, "Gift Basket")

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Fatalf("confirmation should address the customer number: %s", link)
	}

	u, _ := url.Parse(link)
	body := u.Query().Get("text")
	if !strings.Contains(body, "Your Order ID: 42") {
		t.Errorf("message body missing order id:\n%s", body)
	}
	if !strings.Contains(body, "Product Type: Gift Basket") {
		t.Errorf("message body missing product type:\n%s", body)
	}
}
