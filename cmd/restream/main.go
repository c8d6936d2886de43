package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/restream"
	"github.com/viant/restream/client"
)

type options struct {
	restream.ClientOptions
	Method string   `short:"X" long:"method" description:"HTTP method" default:"GET"`
	Path   string   `short:"p" long:"path" description:"request path" required:"true"`
	Query  []string `short:"q" long:"query" description:"query parameter key=value, repeatable"`
	Data   string   `short:"d" long:"data" description:"request body"`
	JSON   bool     `short:"j" long:"json" description:"JSON content negotiation"`
	NoAuth bool     `long:"no-auth" description:"do not attach credentials"`
	Stream bool     `long:"stream" description:"return a live byte stream (e.g. log tail)"`
}

func main() {
	opts := &options{}
	if _, err := flags.Parse(opts); err != nil {
		os.Exit(1)
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	cli, err := restream.New(ctx, &opts.ClientOptions)
	if err != nil {
		return err
	}
	query := url.Values{}
	for _, pair := range opts.Query {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid query parameter %q, expected key=value", pair)
		}
		query.Add(key, value)
	}
	request := &client.Request{
		Method: opts.Method,
		Path:   opts.Path,
		Query:  query,
		Body:   []byte(opts.Data),
		JSON:   opts.JSON,
		NoAuth: opts.NoAuth,
		Stream: opts.Stream,
	}
	result, err := cli.Do(ctx, request)
	if err != nil {
		return err
	}
	if result.Stream != nil {
		defer result.Stream.Close()
		_, err = io.Copy(os.Stdout, result.Stream)
		return err
	}
	if result.Session != nil {
		fmt.Print(result.Session.Output)
		return nil
	}
	fmt.Printf("%s\n", result.Body)
	return nil
}
