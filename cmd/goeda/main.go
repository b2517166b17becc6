// Command goeda is a small CLI over the goeda library: glimpse, summarize
// and correlate CSV datasets from the terminal.
package main

func main() {
	Execute()
}
