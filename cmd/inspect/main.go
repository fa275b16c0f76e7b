// Command inspect prints the documents of a profile as a table. The database
// is opened read-only so it can run next to the daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chat-store/domain"
	"chat-store/infrastructure/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

var kinds = []domain.Kind{domain.KindChatroom, domain.KindMessage, domain.KindPeer, domain.KindVcard}

func main() {
	_ = godotenv.Load()
	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "", "Key prefix to scan, every kind when empty")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer func() { _ = db.Close() }()
	store := storage.NewDocumentStore(db, logs.GetLoggerFromString("WARN"))

	prefixes := []string{*prefix}
	if *prefix == "" {
		prefixes = make([]string, 0, len(kinds))
		for _, k := range kinds {
			prefixes = append(prefixes, k.Prefix())
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, p := range prefixes {
		docs, err := store.Query(storage.Query{Prefix: p})
		if err != nil {
			log.Fatal(err)
		}
		for _, doc := range docs {
			row := Summarize(doc)
			table.Append([]string{shortKey(row.Key), paint(row), row.Detail})
		}
	}
	table.Render()
}

// shortKey keeps the kind and the first bytes of the id.
func shortKey(key string) string {
	kind, id, found := strings.Cut(key, ":")
	if !found || len(id) <= 12 {
		return key
	}
	return fmt.Sprintf("%s:%s…", kind, id[:12])
}

func paint(row Row) string {
	if row.Corrupted {
		return color.Red.Sprint(row.Type)
	}
	switch domain.Kind(row.Type) {
	case domain.KindChatroom:
		return color.Cyan.Sprint(row.Type)
	case domain.KindMessage:
		return color.Green.Sprint(row.Type)
	case domain.KindPeer:
		return color.Yellow.Sprint(row.Type)
	default:
		return color.Magenta.Sprint(row.Type)
	}
}
