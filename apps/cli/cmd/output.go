package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

// printStatus writes "METHOD path -> code" to w, coloured by status class.
func printStatus(w io.Writer, client *twitteroauth.Client) {
	status := client.LastResult().Status()

	var paint func(a ...interface{}) string
	switch {
	case status.IsSuccess():
		paint = color.New(color.FgGreen).SprintFunc()
	case status.IsServerError():
		paint = color.New(color.FgRed, color.Bold).SprintFunc()
	case status.IsClientError(), status.StatusCode == 0:
		paint = color.New(color.FgRed).SprintFunc()
	default:
		paint = color.New(color.FgYellow).SprintFunc()
	}
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s -> %s\n", bold(client.LastHTTPMethod()), client.LastAPIPath(), paint(status.StatusCode))
	if rl, ok := client.LastRateLimit(); ok && verboseFlag {
		fmt.Fprintf(w, "rate limit: %d/%d, resets %s\n", rl.Remaining, rl.Limit, rl.Reset.Format(time.Kitchen))
	}
}

// printBody writes the body to w. JSON is indented, form bodies are
// printed one key=value per line, anything else as received.
func printBody(w io.Writer, body twitteroauth.Body) {
	switch body.Kind {
	case twitteroauth.BodyObject, twitteroauth.BodyArray:
		fmt.Fprintln(w, gjson.GetBytes(body.Raw, "@pretty").String())
	case twitteroauth.BodyForm:
		keys := make([]string, 0, len(body.Form))
		for k := range body.Form {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s=%s\n", k, body.Form[k])
		}
	default:
		if len(body.Raw) > 0 {
			fmt.Fprintln(w, string(body.Raw))
		}
	}
}

// report prints the outcome of an API call and converts a non-2xx status
// into a statusError.
func report(stdout, stderr io.Writer, client *twitteroauth.Client, body twitteroauth.Body, err error) error {
	if err != nil && client.LastHTTPCode() == 0 {
		return err
	}
	printStatus(stderr, client)
	printBody(stdout, body)
	if err != nil {
		return err
	}
	if status := client.LastResult().Status(); !status.IsSuccess() {
		return &statusError{code: status.StatusCode}
	}
	return nil
}
