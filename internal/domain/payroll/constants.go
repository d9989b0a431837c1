package payroll

const (
	ModeBracketComputed = "bracket"
	ModeFlatRates       = "flatRates"

	DefaultWithholdingTaxRate = 0.15
	ReducedWithholdingTaxRate = 0.12

	DefaultRiceSubsidy       = 1500.0
	DefaultPhoneAllowance    = 1000.0
	ManagerPhoneAllowance    = 800.0
	DefaultClothingAllowance = 800.0
	ManagerClothingAllowance = 600.0

	legacySSSRate        = 0.045
	legacyPhilHealthRate = 0.04
	legacyPagIbigRate    = 0.02
)
