package deductions

import "math"

// Bracket is one row of the SSS contribution schedule. Upper is the
// published upper bound; selection only relies on Lower.
type Bracket struct {
	Lower  float64
	Upper  float64
	Amount float64
}

// TaxTier is one row of the withholding tax schedule. A compensation
// belongs to the first tier whose Upper it does not exceed.
type TaxTier struct {
	Upper      float64
	Subtrahend float64
	Rate       float64
	Addend     float64
}

const (
	sssFirstUpper  = 5249.99
	sssSecondLower = 5250.0
	sssStep        = 500.0
	sssFirstPay    = 250.0
	sssPayStep     = 25.0
	sssTopLower    = 34750.0
	sssTopAmount   = 1750.0

	philHealthRate  = 0.05
	philHealthFloor = 500.0
	philHealthCap   = 5000.0

	pagIbigRate = 0.02
	pagIbigCap  = 200.0
)

// SSSBrackets is the contribution table: 0-5,249.99 pays 250, every further
// 500 pesos adds 25, and 34,750 and above pays 1,750.
var SSSBrackets = buildSSSBrackets()

var TaxTiers = []TaxTier{
	{Upper: 20833, Subtrahend: 0, Rate: 0, Addend: 0},
	{Upper: 33332, Subtrahend: 20833, Rate: 0.20, Addend: 0},
	{Upper: 66666, Subtrahend: 33333, Rate: 0.25, Addend: 2500.00},
	{Upper: 166666, Subtrahend: 66667, Rate: 0.30, Addend: 10833.33},
	{Upper: 666666, Subtrahend: 166667, Rate: 0.32, Addend: 40833.33},
	{Upper: math.Inf(1), Subtrahend: 666667, Rate: 0.35, Addend: 200833.33},
}

func buildSSSBrackets() []Bracket {
	brackets := []Bracket{{Lower: 0, Upper: sssFirstUpper, Amount: sssFirstPay}}
	for i := 0; ; i++ {
		lower := sssSecondLower + float64(i)*sssStep
		if lower >= sssTopLower {
			break
		}
		brackets = append(brackets, Bracket{
			Lower:  lower,
			Upper:  lower + sssStep - 0.01,
			Amount: sssFirstPay + float64(i+1)*sssPayStep,
		})
	}
	return append(brackets, Bracket{Lower: sssTopLower, Upper: math.Inf(1), Amount: sssTopAmount})
}
