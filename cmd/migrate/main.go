// Command migrate bulk-loads a JSON document list into the entity store,
// deduplicating clusters, phones and voicemails by natural key. Safe to rerun
// against the same file: existing users are skipped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/safakhan413/user-data-api/internal/app"
	"github.com/safakhan413/user-data-api/internal/services"
)

func main() {
	docsPath := flag.String("file", "documents.json", "path to the JSON document list")
	flag.Parse()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	raw, err := os.ReadFile(*docsPath)
	if err != nil {
		a.Log.Error("Failed to read documents file", "path", *docsPath, "error", err)
		os.Exit(1)
	}
	var docs []services.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		a.Log.Error("Failed to parse documents file", "path", *docsPath, "error", err)
		os.Exit(1)
	}

	summary, err := a.Services.Import.ImportDocuments(context.Background(), docs)
	if err != nil {
		a.Log.Error("Import failed", "error", err)
		os.Exit(1)
	}
	a.Log.Info("Data migration completed successfully",
		"clusters_created", summary.ClustersCreated,
		"phones_created", summary.PhonesCreated,
		"voicemails_created", summary.VoicemailsCreated,
		"users_created", summary.UsersCreated,
		"users_skipped", summary.UsersSkipped,
	)
}
