package notifier

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blockpulse/whale-sentry/internal/domain"
)

// FormatTransferAlert renders the alert text for an incoming transfer
func FormatTransferAlert(event *domain.TransferEvent, amountUSD decimal.Decimal) string {
	symbol := event.TokenSymbol
	if symbol == "" {
		symbol = "tokens"
	}

	return fmt.Sprintf(
		"🐋 <b>Whale transfer detected</b>\n\n"+
			"Amount: <b>%s %s</b>\n"+
			"Value: <b>$%s</b>\n"+
			"To: <code>%s</code>\n"+
			"Tx: <code>%s</code>",
		event.Quantity().String(),
		symbol,
		amountUSD.StringFixed(2),
		event.ToAddress,
		event.TxHash,
	)
}

// FormatTradeAlert renders the follow-up text after a trade has been placed
func FormatTradeAlert(symbol string, quoteAmount decimal.Decimal, orderID int64) string {
	return fmt.Sprintf(
		"📈 <b>Trade executed</b>\n\n"+
			"Market: <b>%s</b>\n"+
			"Sold: <b>$%s</b>\n"+
			"Order: <code>%d</code>",
		symbol,
		quoteAmount.StringFixed(2),
		orderID,
	)
}
