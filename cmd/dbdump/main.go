// dbdump decodes an event database file and prints it as JSON. Debug tool;
// it reads the file directly, so don't point it at a database a running
// server is writing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"eventinvite/internal/domain"
)

type eventDB struct {
	Events []domain.Event `json:"events"`
}

func main() {
	file := flag.String("file", "events.db", "path to the event database file")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read database file: %v\n", err)
		os.Exit(1)
	}

	var db eventDB
	if err := cbor.Unmarshal(data, &db); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse database file: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to format database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
