// Demo program: seed a SQLite-backed record source, fetch partial rows, and
// run the predicate and view pipeline over the loaded records.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/asaidimu/go-recordview/core/predicate"
	"github.com/asaidimu/go-recordview/core/schema"
	"github.com/asaidimu/go-recordview/core/view"
	"github.com/asaidimu/go-recordview/sqlite"
	"go.uber.org/zap"
)

const dbFileName = "accounts.db"

var accountsDef = &schema.SchemaDefinition{
	Name: "accounts",
	Fields: []schema.FieldDefinition{
		{Name: "Id", Kind: schema.KindIdentifier},
		{Name: "Name", Kind: schema.KindText},
		{Name: "Revenue", Kind: schema.KindNumeric},
		{Name: "Active", Kind: schema.KindBoolean},
		{Name: "CreatedAt", Kind: schema.KindDateTime},
	},
}

func main() {
	ctx := context.Background()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	os.Remove(dbFileName)
	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	defer os.Remove(dbFileName)

	source, err := sqlite.NewSource(db, logger)
	if err != nil {
		logger.Fatal("failed to create record source", zap.Error(err))
	}

	unsubscribe := source.Subscribe(sqlite.SourceEventFetchSuccess,
		func(ctx context.Context, event sqlite.SourceEvent) error {
			logger.Info("fetch completed",
				zap.String("schema", event.Schema),
				zap.Int("count", event.Count))
			return nil
		})
	defer unsubscribe()

	if err := source.CreateTable(ctx, accountsDef); err != nil {
		logger.Fatal("failed to create table", zap.Error(err))
	}

	now := time.Now().UTC()
	seedRecords := []*schema.Record{
		schema.NewRecord("accounts").
			Set("Name", "Foo").Set("Revenue", 1000.0).
			Set("Active", true).Set("CreatedAt", now),
		schema.NewRecord("accounts").
			Set("Name", "Bar").Set("Revenue", 5000.0).
			Set("Active", true).Set("CreatedAt", now.Add(-48*time.Hour)),
		schema.NewRecord("accounts").
			Set("Name", "Baz").Set("Revenue", nil).
			Set("Active", false).Set("CreatedAt", now.Add(-24*time.Hour)),
	}
	if err := source.Insert(ctx, accountsDef, seedRecords); err != nil {
		logger.Fatal("failed to seed records", zap.Error(err))
	}

	records, err := source.Fetch(ctx, accountsDef)
	if err != nil {
		logger.Fatal("failed to fetch records", zap.Error(err))
	}
	accounts := view.OfSlice(records).WithLogger(logger)

	revenue := schema.Field("Revenue", schema.KindNumeric)
	active := schema.Field("Active", schema.KindBoolean)
	name := schema.Field("Name", schema.KindText)

	// Active accounts with known revenue above 500.
	funded, err := accounts.Filter(
		predicate.Where(active).Eq(true).
			Also(revenue).Exists().
			Also(revenue).Gt(500))
	if err != nil {
		logger.Fatal("filter failed", zap.Error(err))
	}
	fmt.Printf("funded active accounts: %d\n", funded.Count())

	names, err := view.PluckText(accounts, name)
	if err != nil {
		logger.Fatal("pluck failed", zap.Error(err))
	}
	for _, n := range names {
		fmt.Printf("  account: %s\n", *n)
	}

	// Project down to identifiers and names; everything else stays unset on
	// the copies, so a later host-side save cannot clobber other fields.
	slim, err := accounts.Pick(
		schema.Field("Id", schema.KindIdentifier),
		name,
	)
	if err != nil {
		logger.Fatal("pick failed", zap.Error(err))
	}
	fmt.Printf("picked view carries %d field(s) per record\n", slim.AsList()[0].Len())

	byActive, err := accounts.GroupBy(active)
	if err != nil {
		logger.Fatal("group failed", zap.Error(err))
	}
	for _, group := range byActive.Groups() {
		fmt.Printf("active=%v: %d account(s)\n", group.Key, len(group.Records))
	}
}
