package domain

// Quote результат расчёта стоимости бронирования.
// Все суммы в минорных единицах валюты (центы/копейки).
type Quote struct {
	BillableMinutes int
	BaseCents       int64
	ServiceFeeCents int64
	TotalCents      int64
}

// CalculateQuote считает стоимость бронирования:
// оплачиваемая длительность = max(запрошенная, минимальная по кухне),
// база = ставка * часы, сервисный сбор = ServiceFeePercent от базы.
// Вся арифметика целочисленная; округление "половина от нуля" применяется
// по одному разу на величину и не накапливается.
func CalculateQuote(hourlyRateCents int64, requestedMinutes int, minBookingHours int) Quote {
	billableMinutes := requestedMinutes
	if minMinutes := minBookingHours * 60; billableMinutes < minMinutes {
		billableMinutes = minMinutes
	}

	base := roundDiv(hourlyRateCents*int64(billableMinutes), 60)
	fee := roundDiv(base*ServiceFeePercent, 100)

	return Quote{
		BillableMinutes: billableMinutes,
		BaseCents:       base,
		ServiceFeeCents: fee,
		TotalCents:      base + fee,
	}
}

// roundDiv целочисленное деление с округлением "половина от нуля"
func roundDiv(numerator, denominator int64) int64 {
	if numerator >= 0 {
		return (numerator + denominator/2) / denominator
	}
	return (numerator - denominator/2) / denominator
}
