package handlers

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrDataURL renders the given text as a PNG QR code embedded in a data URL.
func qrDataURL(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("QR generation failed: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// upiDeeplink builds a upi://pay URI for the settled amount in INR.
func upiDeeplink(payeeHandle, payerName string, amountINR float64, note string) string {
	link := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		url.QueryEscape(payeeHandle),
		url.QueryEscape(payerName),
		amountINR,
	)
	if strings.TrimSpace(note) != "" {
		link += "&tn=" + url.QueryEscape(note)
	}
	return link
}
