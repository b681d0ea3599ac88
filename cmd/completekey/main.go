package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mahdiidarabi/rsa-crt-recover/pkg/rsacrt"
)

func main() {
	var (
		keyFile     = flag.String("key", "", "Path to key material file (JSON or CSV) holding n, e and d")
		format      = flag.String("format", "json", "Key file format (json or csv)")
		method      = flag.String("method", "witness", "Factor recovery method (witness or cofactor)")
		maxAttempts = flag.Int64("max-attempts", 0, "Maximum candidates to try before giving up (0 = unbounded)")
		numWorkers  = flag.Int("workers", 0, "Parallel workers for the witness search (0 or 1 = serial)")
		pemOut      = flag.Bool("pem", false, "Print each completed key as a PKCS#1 PEM block")
	)
	flag.Parse()

	if *keyFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --key is required\n")
		flag.Usage()
		os.Exit(1)
	}

	var parser rsacrt.KeyParser
	if *format == "json" {
		parser = &rsacrt.JSONParser{}
	} else {
		parser = &rsacrt.CSVParser{}
	}

	cfg := rsacrt.SearchConfig{
		MaxAttempts: *maxAttempts,
		NumWorkers:  *numWorkers,
	}
	var strategy rsacrt.FactorStrategy
	if *method == "cofactor" {
		strategy = rsacrt.NewCofactorStrategy().WithConfig(cfg)
	} else {
		strategy = rsacrt.NewWitnessStrategy().WithConfig(cfg)
	}

	keys, err := parser.ParseKeyMaterial(*keyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := rsacrt.NewClient().WithStrategy(strategy).WithParser(parser)
	ctx := context.Background()

	for i, key := range keys {
		fmt.Printf("Completing key %d/%d (%d-bit modulus) via %s...\n",
			i+1, len(keys), key.N.BitLen(), strategy.Name())

		k, err := client.CompleteKey(ctx, key.N, key.E, key.D)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		printKey(k)
		if *pemOut {
			pemBytes, err := rsacrt.EncodePrivateKeyPEM(k)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			os.Stdout.Write(pemBytes)
		}
	}
}

func printKey(k *rsacrt.CrtKey) {
	fmt.Printf("n     = %x\n", k.N)
	fmt.Printf("e     = %x\n", k.E)
	fmt.Printf("d     = %x\n", k.D)
	fmt.Printf("p     = %x\n", k.P)
	fmt.Printf("q     = %x\n", k.Q)
	fmt.Printf("exp1  = %x\n", k.Exp1)
	fmt.Printf("exp2  = %x\n", k.Exp2)
	fmt.Printf("coeff = %x\n", k.Coeff)
}
