package main

import "flag"

func main() {
	addr := flag.String("addr", ":8123", "listen address")
	dbPath := flag.String("db", "scores.db", "sqlite database path")
	flag.Parse()

	startServer(*addr, *dbPath)
}
