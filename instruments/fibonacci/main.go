//go:generate tinygo build -opt=s -o fibonacci.wasm -target wasi main.go
package main

func main() {}

// fib returns the n-th Fibonacci term in uint64 arithmetic, wrapping
// modulo 2^64 for n > 93.
//
//export fib
func fib(n uint64) uint64 {
	a, b := uint64(0), uint64(1)
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a
}
