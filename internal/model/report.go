package model

// DailyTotal counts coupons issued on a day and how many of them were redeemed.
type DailyTotal struct {
	Date      Date `json:"date"`
	Generated int  `json:"generated"`
	Redeemed  int  `json:"redeemed"`
}

// WeeklyTotal rolls daily totals up to the ISO week starting on WeekStart.
type WeeklyTotal struct {
	WeekStart Date `json:"weekStart"`
	Generated int  `json:"generated"`
	Redeemed  int  `json:"redeemed"`
}

// Overview is the headline figure set for a reporting period.
type Overview struct {
	Start     Date `json:"start"`
	End       Date `json:"end"`
	Generated int  `json:"generated"`
	Redeemed  int  `json:"redeemed"`
	Employees int  `json:"employees"`
}
