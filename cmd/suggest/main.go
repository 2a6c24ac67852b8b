package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/logging"
	"github.com/bmispelon/noyel/internal/suggest"
	util "github.com/bmispelon/noyel/pkg/utils"
)

func main() {
	env := flag.String("env", "development", "config environment (config/<env>.yaml)")
	endpoint := flag.String("endpoint", string(models.EndpointGiftee), "search endpoint: giftee or friend")
	baseURL := flag.String("base-url", "", "override search.base_url")
	flag.Parse()

	cfg, err := config.LoadConfig(*env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using defaults\n", err)
		cfg = config.Default()
	}
	if *baseURL != "" {
		cfg.Search.BaseURL = strings.TrimRight(*baseURL, "/")
		if err := cfg.Search.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	client := suggest.New(cfg.Search, suggest.WithLogger(logger))
	if _, err := client.Path(models.Endpoint(*endpoint)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ctx := context.Background()
		var cancel context.CancelFunc = func() {}
		if cfg.Client.Timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, cfg.Client.Timeout)
		}

		b := time.Now()
		list, err := client.Fetch(ctx, models.Endpoint(*endpoint), scanner.Text())
		cancel()
		if err != nil {
			fmt.Println("error:", err)
		} else {
			fmt.Println(strings.Join(list, "|"))
		}
		fmt.Println(time.Since(b))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	fmt.Print(util.FormatInfoPrefix(client.Metrics().Snapshot(), "endpoint_"+*endpoint+"_"))
}
