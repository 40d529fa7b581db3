package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// state renders the sync state of a record
func state(rec *models.Record) string {
	switch {
	case rec.Deleted:
		return "deleting"
	case rec.IsTemporary():
		return "new"
	case rec.Dirty:
		return "modified"
	default:
		return "synced"
	}
}

// parseID parses a record id argument; zero is never a valid id
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parsePrice converts a decimal amount like "12.5" into cents
func parsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("invalid price %q: use at most two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	cents, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	return int64(units)*100 + int64(cents), nil
}

// formatPrice is the inverse of parsePrice
func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}

// printRecords prints records of one type as an aligned table
func (c *Cli) printRecords(t models.EntityType, records []*models.Record) error {
	if len(records) == 0 {
		c.io.Printf("No %s records\n", t)
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	switch t {
	case models.TypeContact:
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tEMAIL\tPHONE\tSTATE")
	case models.TypeProduct:
		fmt.Fprintln(w, "ID\tNAME\tSKU\tPRICE\tSTATE")
	case models.TypeCartItem:
		fmt.Fprintln(w, "ID\tCONTACT\tPRODUCT\tQTY\tNOTE\tSTATE")
	}

	for _, rec := range records {
		switch e := models.CloneEntity(rec.Entity).(type) {
		case *models.Contact:
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", rec.ID, e.Name, e.Company, e.Email, e.Phone, state(rec))
		case *models.Product:
			price := formatPrice(e.PriceCents)
			if e.Currency != "" {
				price += " " + e.Currency
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", rec.ID, e.Name, e.SKU, price, state(rec))
		case *models.CartItem:
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\n", rec.ID, e.ContactID, e.ProductID, e.Quantity, e.Note, state(rec))
		}
	}

	return w.Flush()
}

// printSaved reports the outcome of a create or edit
func (c *Cli) printSaved(action string, rec *models.Record) {
	c.io.Printf("%s %s %d (%s)\n", action, rec.Type, rec.ID, state(rec))
}
