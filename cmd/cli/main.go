package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/paycore/pkg/bankdetails"
	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/amirasaad/paycore/pkg/money"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  validate <country> field=value...   validate bank details
  fields <country>                    list required bank fields
  countries                           list supported countries
  add|subtract|compare <a> <b>        money arithmetic
  format <amount> <currency>          format an amount for display
  currency <code> <provider>          check provider currency support
  providers                           list providers and their currencies`

var (
	pass  = color.New(color.FgGreen, color.Bold)
	fail  = color.New(color.FgRed, color.Bold)
	faint = color.New(color.Faint)

	validate = validator.New()
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code: 0 on success,
// 1 when the input was checked and found invalid, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "validate":
		return validateCmd(rest, stdout, stderr)
	case "fields":
		return fieldsCmd(rest, stdout, stderr)
	case "countries":
		for _, c := range bankdetails.SupportedCountries() {
			fmt.Fprintln(stdout, c)
		}
		return 0
	case "add", "subtract", "compare":
		return arithmeticCmd(cmd, rest, stdout, stderr)
	case "format":
		return formatCmd(rest, stdout, stderr)
	case "currency":
		return currencyCmd(rest, stdout, stderr)
	case "providers":
		for _, p := range currency.Providers() {
			fmt.Fprintf(stdout, "%s: %s\n", p, strings.Join(currency.SupportedCurrencies(string(p)), ", "))
		}
		return 0
	default:
		fmt.Fprintln(stderr, "Unknown command:", cmd)
		fmt.Fprintln(stderr, usage)
		return 2
	}
}

func usageErr(stderr io.Writer, msg string) int {
	fmt.Fprintln(stderr, "Usage:", msg)
	return 2
}

func validateCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		return usageErr(stderr, "validate <country> field=value...")
	}
	if err := validate.Var(args[0], "required,len=2,alpha"); err != nil {
		fmt.Fprintln(stderr, "Invalid country code:", args[0])
		return 2
	}

	details := bankdetails.BankDetails{CountryCode: args[0]}
	setters := map[bankdetails.Field]*string{
		bankdetails.FieldAccountNumber: &details.AccountNumber,
		bankdetails.FieldRoutingNumber: &details.RoutingNumber,
		bankdetails.FieldSortCode:      &details.SortCode,
		bankdetails.FieldIBAN:          &details.IBAN,
		bankdetails.FieldBSB:           &details.BSB,
		bankdetails.FieldBankName:      &details.BankName,
		bankdetails.FieldAccountName:   &details.AccountName,
	}
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		dst, known := setters[bankdetails.Field(key)]
		if !ok || !known {
			fmt.Fprintln(stderr, "Unknown field argument:", kv)
			return 2
		}
		*dst = value
	}

	result := bankdetails.Validate(details)
	if result.Valid {
		pass.Fprintln(stdout, "✔ bank details are valid")
		return 0
	}
	fail.Fprintln(stdout, "✘ bank details are invalid")
	for _, e := range result.Errors {
		fmt.Fprintln(stdout, "  -", e)
	}
	return 1
}

func fieldsCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		return usageErr(stderr, "fields <country>")
	}
	fields := bankdetails.RequiredFields(args[0])
	if fields == nil {
		fail.Fprintln(stdout, "✘ Bank validation not supported for country:", strings.ToUpper(args[0]))
		return 1
	}
	for _, f := range fields {
		fmt.Fprintf(stdout, "%s ", f)
		faint.Fprintf(stdout, "(%s)\n", f.Label())
	}
	return 0
}

func arithmeticCmd(op string, args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		return usageErr(stderr, op+" <a> <b>")
	}
	a, b := args[0], args[1]

	var (
		out any
		err error
	)
	switch op {
	case "add":
		out, err = money.Add(a, b)
	case "subtract":
		out, err = money.Subtract(a, b)
	default:
		out, err = money.Compare(a, b)
	}
	if err != nil {
		fail.Fprintln(stdout, "✘", err)
		return 1
	}
	if f, ok := out.(float64); ok {
		fmt.Fprintf(stdout, "%.2f\n", f)
		return 0
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func formatCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		return usageErr(stderr, "format <amount> <currency>")
	}
	if err := validate.Var(args[1], "required,len=3,alpha"); err != nil {
		fmt.Fprintln(stderr, "Invalid currency code:", args[1])
		return 2
	}
	code := money.Code(strings.ToUpper(args[1]))
	fmt.Fprintln(stdout, money.Format(args[0], code))
	if err := money.CheckScale(code); err != nil {
		faint.Fprintln(stdout, "note:", err)
	}
	return 0
}

func currencyCmd(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		return usageErr(stderr, "currency <code> <provider>")
	}
	compat := currency.ValidateForProvider(args[0], args[1])
	if compat.Valid {
		pass.Fprintf(stdout, "✔ %s supports %s\n", strings.ToLower(args[1]), strings.ToUpper(args[0]))
		return 0
	}
	fail.Fprintln(stdout, "✘", compat.Message)
	return 1
}
