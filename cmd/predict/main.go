// Command predict is an interactive form client for the prediction
// API: it validates and clamps user-entered passenger attributes,
// submits them, and renders the scored result.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/titanic/api/internal/client"
	"github.com/titanic/api/internal/render"
	"github.com/titanic/api/internal/validate"
)

func main() {
	apiURL := flag.String("url", "http://localhost:8080", "prediction API base URL")
	flag.Parse()

	logger := zap.NewNop()
	if os.Getenv("DEBUG") != "" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cli := client.New(*apiURL, logger)
	form := render.NewLifecycle()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Titanic survival prediction. Press Ctrl-D to quit.")
	for {
		fields, ok := readForm(scanner)
		if !ok {
			return
		}
		submit(cli, form, fields)
		show(form)
	}
}

// readForm prompts for the seven passenger fields. Numeric entries are
// clamped to their valid bounds as they are read; final validation
// happens again at parse time and on the server.
func readForm(scanner *bufio.Scanner) (validate.Form, bool) {
	var f validate.Form
	var ok bool

	if f.Pclass, ok = prompt(scanner, "Passenger class (1-3)"); !ok {
		return f, false
	}
	if f.Sex, ok = prompt(scanner, "Sex (male/female)"); !ok {
		return f, false
	}
	if f.Age, ok = prompt(scanner, "Age"); !ok {
		return f, false
	}
	f.Age = clampEntry(f.Age, validate.ClampAge)
	if f.SibSp, ok = prompt(scanner, "Siblings/spouses aboard"); !ok {
		return f, false
	}
	f.SibSp = clampIntEntry(f.SibSp, validate.ClampSibSp)
	if f.Parch, ok = prompt(scanner, "Parents/children aboard"); !ok {
		return f, false
	}
	f.Parch = clampIntEntry(f.Parch, validate.ClampParch)
	if f.Fare, ok = prompt(scanner, "Fare"); !ok {
		return f, false
	}
	f.Fare = clampEntry(f.Fare, validate.ClampFare)
	if f.Embarked, ok = prompt(scanner, "Embarked (C/Q/S)"); !ok {
		return f, false
	}
	return f, true
}

func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		fmt.Println()
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func clampEntry(entry string, clamp func(float64) float64) string {
	v, err := strconv.ParseFloat(entry, 64)
	if err != nil {
		return entry
	}
	clamped := clamp(v)
	if clamped != v {
		fmt.Printf("  (clamped to %g)\n", clamped)
	}
	return strconv.FormatFloat(clamped, 'f', -1, 64)
}

func clampIntEntry(entry string, clamp func(int) int) string {
	v, err := strconv.Atoi(entry)
	if err != nil {
		return entry
	}
	clamped := clamp(v)
	if clamped != v {
		fmt.Printf("  (clamped to %d)\n", clamped)
	}
	return strconv.Itoa(clamped)
}

// submit runs one lifecycle turn: Submitting, then Success or Failed.
func submit(cli *client.Client, form *render.Lifecycle, fields validate.Form) {
	if err := form.BeginSubmit(); err != nil {
		return
	}

	passenger, err := fields.Parse()
	if err != nil {
		form.Fail(client.UserMessage(err))
		return
	}

	result, err := cli.Predict(context.Background(), passenger)
	if err != nil {
		form.Fail(client.UserMessage(err))
		return
	}
	form.Succeed(render.Render(result))
}

func show(form *render.Lifecycle) {
	if form.State() == render.StateFailed {
		fmt.Printf("\n  %s\n\n", form.ErrorMessage())
		return
	}
	state, ok := form.Result()
	if !ok {
		return
	}
	fmt.Printf("\n  %s (confidence %s)\n", state.OutcomeLabel, state.ConfidenceLabel)
	fmt.Printf("  survival %-6s %s\n", state.SurvivalPercentLabel, bar(state.SurvivalBarWidth))
	fmt.Printf("  death    %-6s %s\n\n", state.DeathPercentLabel, bar(state.DeathBarWidth))
}

// bar renders a width percentage as a 40-column gauge.
func bar(width float64) string {
	filled := int(width * 40 / 100)
	return strings.Repeat("#", filled) + strings.Repeat("-", 40-filled)
}
