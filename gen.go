//go:build ignore

// Writes a sample document for a random integer polynomial to stdout and its
// secret to stderr. Usage: go run gen.go [k] [n]
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"strconv"

	"threshold-secret-solver/services"
	"threshold-secret-solver/utils"
)

func main() {
	k := rand.Intn(6) + 2 // 2 to 7
	n := k + rand.Intn(4)

	if len(os.Args) >= 3 {
		k, _ = strconv.Atoi(os.Args[1])
		n, _ = strconv.Atoi(os.Args[2])
	}
	if k < 1 || n < k {
		fmt.Fprintf(os.Stderr, "need 1 <= k <= n, got k=%d n=%d\n", k, n)
		os.Exit(2)
	}

	secret := big.NewInt(rand.Int63n(1 << 40))
	bound := new(big.Int).Lsh(big.NewInt(1), 48)
	poly, err := utils.NewRandomPolynomial(k-1, secret, bound)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	doc := map[string]any{
		services.KeysField: map[string]int{"n": n, "k": k},
	}
	for x := 1; x <= n; x++ {
		base := rand.Intn(35) + 2 // 2 to 36
		value, err := services.Encode(poly.Evaluate(big.NewInt(int64(x))), base)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		doc[strconv.Itoa(x)] = map[string]string{"base": strconv.Itoa(base), "value": value}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "secret: %s\n", poly.Secret())
}
