package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yourname/rmbg_lite/pkg/rmbgclient"
)

// main отправляет изображение в сервис и сохраняет PNG без фона.
func main() {
	server := flag.String("server", "http://localhost:5000", "base URL of the web service")
	out := flag.String("o", "", "output file (default: name suggested by the server)")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	quiet := flag.Bool("q", false, "no progress output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <image.png|jpg|jpeg>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	opts := []rmbgclient.Option{rmbgclient.WithHTTPClient(&http.Client{Timeout: *timeout})}
	if !*quiet {
		opts = append(opts, rmbgclient.WithProgress(os.Stderr))
	}
	client := rmbgclient.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := client.RemoveBackground(ctx, *server, rmbgclient.RemoveRequest{
		Filename: filepath.Base(path),
		Reader:   f,
	})
	if err != nil {
		log.Fatal(err)
	}

	dst := *out
	if dst == "" {
		dst = res.Filename
	}
	if dst == "" {
		dst = filepath.Base(path) + "_rmbg.png"
	}
	if err := os.WriteFile(dst, res.PNG, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Println(dst)
}
