// Command gendocs emits a randomized documents.json fixture: N users with
// 9-digit user ids, drawn from shared pools of phones and voicemails so that
// device sharing across users actually occurs in the data.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/safakhan413/user-data-api/internal/services"
)

var (
	clusterIDs        = []string{"domainserver1", "domainserver2", "domainserver3", "domainserver4"}
	phonePrefixes     = []string{"SEP", "HP", "SAMS", "LG", "APP"}
	voicemailPrefixes = []string{"VM", "MSG", "MAIL", "VOICE"}
)

func main() {
	numUsers := flag.Int("users", 100, "number of users to generate")
	numPhones := flag.Int("phones", 200, "size of the shared phone pool")
	numVoicemails := flag.Int("voicemails", 200, "size of the shared voicemail pool")
	out := flag.String("out", "documents.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	phonesPool := make([]string, *numPhones)
	for i := range phonesPool {
		prefix := phonePrefixes[rng.Intn(len(phonePrefixes))]
		phonesPool[i] = fmt.Sprintf("%s%d", prefix, 100000000000+rng.Int63n(900000000000))
	}
	voicemailsPool := make([]string, *numVoicemails)
	for i := range voicemailsPool {
		prefix := voicemailPrefixes[rng.Intn(len(voicemailPrefixes))]
		voicemailsPool[i] = fmt.Sprintf("%s%d", prefix, 100000+rng.Intn(900000))
	}

	now := time.Now().Unix()
	oneYear := int64(365 * 24 * 60 * 60)

	docs := make([]services.Document, 0, *numUsers)
	for i := 0; i < *numUsers; i++ {
		doc := services.Document{
			ID:              10001 + i,
			UserID:          fmt.Sprintf("%d", 100000000+rng.Intn(900000000)),
			OriginationTime: now - rng.Int63n(oneYear),
			ClusterID:       clusterIDs[rng.Intn(len(clusterIDs))],
		}
		doc.Devices.Phone = sampleUnique(rng, phonesPool, 1+rng.Intn(5))
		doc.Devices.Voicemail = sampleUnique(rng, voicemailsPool, 1+rng.Intn(3))
		docs = append(docs, doc)
	}

	payload, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		fmt.Printf("Failed to marshal documents: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d documents in %s\n", len(docs), *out)
}

func sampleUnique(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	perm := rng.Perm(len(pool))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}
