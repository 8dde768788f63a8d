// Command eshopctl exports a browser tab to a file, or imports records from
// one, without going through the HTTP server.
//
//	eshopctl export -tab products -file products.json
//	eshopctl export -tab orders -file s3://backups/orders.xlsx -format xlsx
//	eshopctl import -tab customers -file customers.json
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"eshopadmin/internal/codec"
	"eshopadmin/internal/config"
	"eshopadmin/internal/filestore"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/repos"
	"eshopadmin/internal/services"
)

var exitFunc = os.Exit

func main() {
	cfg := config.Load()
	applog.Setup(os.Stderr, cfg.LogLevel)

	g, err := repos.OpenDB(repos.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.MaxOpenConns,
		ConnLifetime: cfg.ConnLifetime,
		EnsureSchema: cfg.EnsureSchema,
	})
	if err != nil {
		applog.Fatal("db.connect", err, nil)
	}
	err = run(context.Background(), g, cfg.S3, os.Args[1:], os.Stdout)
	_ = g.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "eshopctl:", err)
		exitFunc(1)
	}
}

// tab is the part of a browser tab the command needs.
type tab interface {
	Import(ctx context.Context, records []codec.Record) (int, error)
	Export() codec.Table
}

func run(ctx context.Context, g *repos.Gateway, s3cfg config.S3Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: eshopctl export|import -tab products|customers|orders -file <path|s3://bucket/key>")
	}
	cmd := args[0]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	tabName := fs.String("tab", "", "products, customers or orders")
	file := fs.String("file", "", "local path or s3://bucket/key")
	format := fs.String("format", "", "json or xlsx (export only; default from the file extension)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	target, err := filestore.ParseTarget(*file)
	if err != nil {
		return err
	}
	store, err := filestore.Open(ctx, target, s3cfg)
	if err != nil {
		return err
	}

	tabs := services.NewSessions(g, 0).Get("eshopctl")
	t, err := pick(ctx, tabs, *tabName)
	if err != nil {
		return err
	}

	switch cmd {
	case "export":
		return export(ctx, store, target.Key, t, *tabName, *format, stdout)
	case "import":
		return importFile(ctx, store, target.Key, t, *tabName, stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// pick loads the named tab so an export sees every stored row.
func pick(ctx context.Context, tabs *services.Tabs, name string) (tab, error) {
	switch name {
	case "products":
		_, err := tabs.Products.Load(ctx)
		return tabs.Products, err
	case "customers":
		_, err := tabs.Customers.Load(ctx)
		return tabs.Customers, err
	case "orders":
		_, err := tabs.Orders.Load(ctx)
		return tabs.Orders, err
	default:
		return nil, fmt.Errorf("unknown tab %q", name)
	}
}

func export(ctx context.Context, store filestore.Store, key string, t tab, name, format string, stdout io.Writer) error {
	if format == "" {
		format = "json"
		if strings.HasSuffix(strings.ToLower(key), ".xlsx") {
			format = "xlsx"
		}
	}
	table := t.Export()
	var buf bytes.Buffer
	var contentType string
	switch format {
	case "json":
		contentType = "application/json"
		if err := codec.EncodeJSON(&buf, codec.Export(table)); err != nil {
			return err
		}
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := codec.WriteXLSX(&buf, name, table); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err := store.Put(ctx, key, &buf, contentType); err != nil {
		return err
	}
	applog.Event("cli.export", map[string]any{"tab": name, "rows": len(table.Rows), "driver": string(store.Driver()), "key": key})
	fmt.Fprintf(stdout, "exported %d %s to %s\n", len(table.Rows), name, key)
	return nil
}

func importFile(ctx context.Context, store filestore.Store, key string, t tab, name string, stdout io.Writer) error {
	rc, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()
	recs, err := codec.DecodeRecords(rc)
	if err != nil {
		return err
	}
	n, err := t.Import(ctx, recs)
	applog.Event("cli.import", map[string]any{"tab": name, "records": len(recs), "inserted": n})
	fmt.Fprintf(stdout, "imported %d of %d %s\n", n, len(recs), name)
	return err
}
