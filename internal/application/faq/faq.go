package faq

import "strings"

type entry struct {
	keywords string
	answer   string
}

// Canned help content, matched by keyword overlap with the question.
var entries = []entry{
	{
		"fees",
		"Fees: INR payments have no fees in this demo. Cross-border includes a fixed ₹99 transfer fee and ₹25 platform fee, plus live FX.",
	},
	{
		"fx rate",
		"FX: We fetch a live rate (or use a fallback) and compute base→INR. The rate and timestamp are stored per payment for transparency.",
	},
	{
		"upi",
		"UPI: This is a simulated flow for demos. In production, integrate with a licensed bank/PSP/PA and verify webhooks before fulfillment.",
	},
	{
		"production",
		"Production: Implement order tracking, reconciliation, webhook signature verification, idempotency and retries. Do not ship demo flows to prod.",
	},
	{
		"env",
		"Environment: Set the database settings, FX_API_KEY, PORT and PUBLIC_BASE_URL in config.yaml or .env to run locally.",
	},
	{
		"risk",
		"Risk: We compute a simple 0–100 risk score with Low/Medium/High label based on amount, cross-border, handle quality, keywords, and time.",
	},
}

const defaultAnswer = "I can help with fees, FX, UPI demo vs. prod, env vars, and risk scoring in this app."

// Answer picks the canned entry whose keywords overlap the question most.
// Zero overlap returns a generic pointer at the topics covered.
func Answer(question string) string {
	q := strings.ToLower(question)

	bestIdx, bestScore := 0, 0
	for i, e := range entries {
		score := 0
		for _, token := range strings.Fields(e.keywords) {
			if strings.Contains(q, token) {
				score++
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	if bestScore == 0 {
		return defaultAnswer
	}
	return entries[bestIdx].answer
}
