package ui

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/providers/internal/form"
	"github.com/roach88/providers/internal/locale"
	"github.com/roach88/providers/internal/notify"
	"github.com/roach88/providers/internal/provider"
)

// Page is everything the form page renders.
type Page struct {
	Title         string
	Fields        []FieldView
	SubmitLabel   string
	Editing       bool
	CancelLabel   string
	Columns       []string
	Rows          []RowView
	Empty         bool
	EmptyText     string
	EditLabel     string
	DeleteLabel   string
	Notifications []NotificationView
}

// FieldView is one labeled form input.
type FieldView struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
}

// RowView is one table row.
type RowView struct {
	ID    int64
	Cells []string
}

// NotificationView is one live toast. RemainingMillis is the time left
// when the page was built.
type NotificationView struct {
	ID              string
	Kind            string
	Message         string
	RemainingMillis int64
}

var placeholders = map[provider.Field]string{
	provider.FieldName:    locale.PlaceholderName,
	provider.FieldContact: locale.PlaceholderContact,
	provider.FieldAddress: locale.PlaceholderAddress,
	provider.FieldPhone:   locale.PlaceholderPhone,
	provider.FieldEmail:   locale.PlaceholderEmail,
}

var labels = map[provider.Field]string{
	provider.FieldName:    locale.ColName,
	provider.FieldContact: locale.ColContact,
	provider.FieldAddress: locale.ColAddress,
	provider.FieldPhone:   locale.ColPhone,
	provider.FieldEmail:   locale.ColEmail,
}

var columns = []string{
	locale.ColName,
	locale.ColContact,
	locale.ColAddress,
	locale.ColPhone,
	locale.ColEmail,
}

func defaultPrinter() *message.Printer {
	return locale.Printer(language.English)
}

// SubmitLabel returns the submit button label for the given mode.
func SubmitLabel(pr *message.Printer, mode form.Mode) string {
	if mode == form.Editing {
		return locale.Text(pr, locale.ButtonUpdate)
	}
	return locale.Text(pr, locale.ButtonAdd)
}

func buildPage(pr *message.Printer, draft provider.Record, mode form.Mode, rows []provider.Record, notes []notify.Notification, now time.Time) Page {
	page := Page{
		Title:       locale.Text(pr, locale.Title),
		SubmitLabel: SubmitLabel(pr, mode),
		Editing:     mode == form.Editing,
		CancelLabel: locale.Text(pr, locale.ButtonCancel),
		Empty:       len(rows) == 0,
		EmptyText:   locale.Text(pr, locale.EmptyTable),
		EditLabel:   locale.Text(pr, locale.ButtonEdit),
		DeleteLabel: locale.Text(pr, locale.ButtonDelete),
	}

	for _, f := range provider.Fields() {
		page.Fields = append(page.Fields, FieldView{
			Name:        string(f),
			Label:       locale.Text(pr, labels[f]),
			Placeholder: locale.Text(pr, placeholders[f]),
			Value:       draft.Get(f),
		})
	}

	for _, c := range columns {
		page.Columns = append(page.Columns, locale.Text(pr, c))
	}
	page.Columns = append(page.Columns, locale.Text(pr, locale.ColActions))

	for _, r := range rows {
		page.Rows = append(page.Rows, RowView{ID: r.ID, Cells: cells(r)})
	}

	for _, n := range notes {
		page.Notifications = append(page.Notifications, NotificationView{
			ID:              n.ID,
			Kind:            string(n.Kind),
			Message:         locale.Text(pr, n.Message),
			RemainingMillis: n.Remaining(now).Milliseconds(),
		})
	}
	return page
}

func cells(r provider.Record) []string {
	out := make([]string, 0, len(provider.Fields()))
	for _, f := range provider.Fields() {
		out = append(out, r.Get(f))
	}
	return out
}

// WriteTable prints records as an aligned text table with an ID column in
// place of the row actions. An empty list prints the placeholder row.
func WriteTable(w io.Writer, records []provider.Record, pr *message.Printer) error {
	if pr == nil {
		pr = defaultPrinter()
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "ID")
	for _, c := range columns {
		fmt.Fprintf(tw, "\t%s", locale.Text(pr, c))
	}
	fmt.Fprintln(tw)

	if len(records) == 0 {
		fmt.Fprintf(tw, "-\t%s\n", locale.Text(pr, locale.EmptyTable))
		return tw.Flush()
	}

	for _, r := range records {
		fmt.Fprint(tw, strconv.FormatInt(r.ID, 10))
		for _, c := range cells(r) {
			fmt.Fprintf(tw, "\t%s", c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
