package appointments

import (
	"fmt"
	"time"
)

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders t in Portuguese, e.g. "dia 01 de junho, às 9:00h".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("dia %02d de %s, às %d:%02dh",
		t.Day(), ptMonths[t.Month()-1], t.Hour(), t.Minute())
}
