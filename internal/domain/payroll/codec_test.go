package payroll

import (
	"strings"
	"testing"
)

func TestCodecEncodeCanonicalRow(t *testing.T) {
	row := Codec{}.Encode(NewDefaultRecord("1001", "Developer", 35000))
	want := "1001,35000.0,1750.0,1750.0,200.0,3741.75,1500.0,1000.0,800.0"
	if got := strings.Join(row, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCodecDecodeIgnoresStoredAmounts(t *testing.T) {
	codec := Codec{}
	row := []string{"1001", "35000.0", "1.0", "2.0", "3.0", "4.00", "1500.0", "1000.0", "800.0"}
	record, err := codec.Decode(codec.Header(), row)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Mode() != ModeBracketComputed {
		t.Fatalf("expected bracket mode, got %s", record.Mode())
	}
	net, _ := record.NetSalary()
	if net != 30858.25 {
		t.Fatalf("expected recomputed net 30858.25, got %v", net)
	}
}

func TestCodecDecodeLegacyRates(t *testing.T) {
	header := []string{"EmployeeID", "BaseSalary", "SSSRate", "PhilHealthRate", "PagIBIGRate", "WithholdingTax", "RiceSubsidy", "PhoneAllowance", "ClothingAllowance"}
	row := []string{"1002", "60000.0", "0.045", "0.04", "0.02", "0.12", "1500.0", "800.0", "600.0"}
	record, err := Codec{}.Decode(header, row)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rates, ok := record.Deductions.(FlatRates)
	if !ok {
		t.Fatalf("expected flat rates, got %T", record.Deductions)
	}
	if rates.WithholdingTaxRate != 0.12 || rates.SSSRate != 0.045 {
		t.Fatalf("unexpected rates %+v", rates)
	}
}

func TestCodecDecodeRejectsBadRows(t *testing.T) {
	codec := Codec{}
	rows := [][]string{
		{"", "35000", "0", "0", "0", "0", "0", "0", "0"},
		{"1001", "abc", "0", "0", "0", "0", "0", "0", "0"},
		{"1001", "-100", "0", "0", "0", "0", "0", "0", "0"},
	}
	for i, row := range rows {
		if _, err := codec.Decode(codec.Header(), row); err == nil {
			t.Fatalf("row %d: expected decode error", i)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		35000:    "35000.0",
		1500.5:   "1500.5",
		0:        "0.0",
		3741.75:  "3741.75",
		22123.23: "22123.23",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v): expected %s, got %s", in, want, got)
		}
	}
}
