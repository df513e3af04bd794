package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shipdesk/internal/models"
)

// PaymentStatusBreakdown 按付款状态的金额分解
type PaymentStatusBreakdown struct {
	PaymentStatus string  `json:"payment_status"`
	Count         int     `json:"count"`
	TotalCost     float64 `json:"total_cost"`
}

// FinancialSummary 财务汇总（金额以 decimal 求和后保留两位小数）
type FinancialSummary struct {
	TotalCost        float64                  `json:"total_cost"`
	TotalDiscount    float64                  `json:"total_discount"`
	TotalExtraCost   float64                  `json:"total_extra_cost"`
	TotalAmountPaid  float64                  `json:"total_amount_paid"`
	TotalOutstanding float64                  `json:"total_outstanding"`
	ByPaymentStatus  []PaymentStatusBreakdown `json:"by_payment_status"`
}

// BuildFinancialSummary 计算财务汇总。
// outstanding = cost + extraCost - discount - amountPaid。
func BuildFinancialSummary(partials []models.PartialShipment) FinancialSummary {
	cost := decimal.Zero
	discount := decimal.Zero
	extra := decimal.Zero
	paid := decimal.Zero
	byStatusCount := map[string]int{}
	byStatusCost := map[string]decimal.Decimal{}

	for _, partial := range partials {
		partialCost := decimal.NewFromFloat(partial.Cost)
		cost = cost.Add(partialCost)
		discount = discount.Add(decimal.NewFromFloat(partial.DiscountAmount))
		extra = extra.Add(decimal.NewFromFloat(partial.ExtraCostAmount))
		paid = paid.Add(decimal.NewFromFloat(partial.AmountPaid))
		byStatusCount[partial.PaymentStatus]++
		byStatusCost[partial.PaymentStatus] = byStatusCost[partial.PaymentStatus].Add(partialCost)
	}

	outstanding := cost.Add(extra).Sub(discount).Sub(paid)

	summary := FinancialSummary{
		TotalCost:        round2(cost),
		TotalDiscount:    round2(discount),
		TotalExtraCost:   round2(extra),
		TotalAmountPaid:  round2(paid),
		TotalOutstanding: round2(outstanding),
		ByPaymentStatus:  make([]PaymentStatusBreakdown, 0, len(byStatusCount)),
	}
	for status, count := range byStatusCount {
		summary.ByPaymentStatus = append(summary.ByPaymentStatus, PaymentStatusBreakdown{
			PaymentStatus: status,
			Count:         count,
			TotalCost:     round2(byStatusCost[status]),
		})
	}
	sort.Slice(summary.ByPaymentStatus, func(i, j int) bool {
		return summary.ByPaymentStatus[i].PaymentStatus < summary.ByPaymentStatus[j].PaymentStatus
	})
	return summary
}

func round2(d decimal.Decimal) float64 {
	value, _ := d.Round(2).Float64()
	return value
}
