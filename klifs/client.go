// Package klifs provides a client for the KLIFS structural kinase-ligand
// database and the identifier projection used by the export pipeline.
package klifs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juju/ratelimit"
	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/logging"
	"golang.org/x/text/encoding/charmap"
)

// DefaultBaseURL is the public KLIFS REST endpoint
const DefaultBaseURL = "https://klifs.net/api"

// kinase_ID query values per structures_list/ligands_list call. KLIFS accepts
// comma-separated lists but rejects overly long query strings.
const kinaseIDBatchSize = 200

// Compile-time check to ensure Client implements the Client interface
var _ interfaces.Client = (*Client)(nil)

// Client talks to the KLIFS REST API. Requests are throttled with a token
// bucket so full-table listings stay polite towards the public service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	bucket     *ratelimit.Bucket
}

// NewClient creates a KLIFS client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// 4 requests per second, small burst
		bucket: ratelimit.NewBucketWithRate(4, 8),
	}
}

// get performs a throttled GET against the API and returns the body as UTF-8
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	c.bucket.Wait(1)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", response.StatusCode, endpoint)
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Some upstream responses carry ISO-8859-1 kinase names, so sniff first
	if !utf8.Valid(bodyBytes) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(bodyBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ISO-8859-1 response: %w", err)
		}
		bodyBytes = decoded
	}

	return bodyBytes, nil
}

// ListKinases fetches the full kinase information table
func (c *Client) ListKinases(ctx context.Context) ([]entities.Kinase, error) {
	body, err := c.get(ctx, "/kinase_information", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list kinases: %w", err)
	}

	var kinases []entities.Kinase
	if err := json.Unmarshal(body, &kinases); err != nil {
		return nil, fmt.Errorf("failed to decode kinase information: %w", err)
	}

	return kinases, nil
}

// ListAllStructures fetches the complete structures table. The structures_list
// endpoint is keyed by kinase IDs, so the kinase table is fetched first and
// the listing is done in sequential batches.
func (c *Client) ListAllStructures(ctx context.Context) ([]entities.Structure, error) {
	kinases, err := c.ListKinases(ctx)
	if err != nil {
		return nil, err
	}

	var structures []entities.Structure
	for _, batch := range kinaseIDBatches(kinases) {
		query := url.Values{}
		query.Set("kinase_ID", batch)

		body, err := c.get(ctx, "/structures_list", query)
		if err != nil {
			return nil, fmt.Errorf("failed to list structures: %w", err)
		}

		var page []entities.Structure
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode structures list: %w", err)
		}

		structures = append(structures, page...)
	}

	logging.Info("Fetched structures table", "kinase_count", len(kinases), "structure_count", len(structures))
	return structures, nil
}

// ListAllLigands fetches the complete ligands table, batched the same way as
// the structures listing.
func (c *Client) ListAllLigands(ctx context.Context) ([]entities.Ligand, error) {
	kinases, err := c.ListKinases(ctx)
	if err != nil {
		return nil, err
	}

	// The same ligand can serve several kinases; keep the first occurrence
	seen := make(map[int]bool)
	var ligands []entities.Ligand

	for _, batch := range kinaseIDBatches(kinases) {
		query := url.Values{}
		query.Set("kinase_ID", batch)

		body, err := c.get(ctx, "/ligands_list", query)
		if err != nil {
			return nil, fmt.Errorf("failed to list ligands: %w", err)
		}

		var page []entities.Ligand
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode ligands list: %w", err)
		}

		for _, ligand := range page {
			if seen[ligand.LigandID] {
				continue
			}
			seen[ligand.LigandID] = true
			ligands = append(ligands, ligand)
		}
	}

	logging.Info("Fetched ligands table", "ligand_count", len(ligands))
	return ligands, nil
}

// kinaseIDBatches joins kinase IDs into comma-separated query values
func kinaseIDBatches(kinases []entities.Kinase) []string {
	var batches []string
	var current []string

	for _, kinase := range kinases {
		current = append(current, strconv.Itoa(kinase.KinaseID))
		if len(current) == kinaseIDBatchSize {
			batches = append(batches, strings.Join(current, ","))
			current = nil
		}
	}

	if len(current) > 0 {
		batches = append(batches, strings.Join(current, ","))
	}

	return batches
}
