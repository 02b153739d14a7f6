package regclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irysname/irysname/registry"
)

// TransactionsQuery selects transactions by tag, newest first
const TransactionsQuery = `query($tags: [TagFilter!], $first: Int, $order: SortOrder) {
  transactions(tags: $tags, first: $first, order: $order) {
    edges {
      node {
        id
        address
        timestamp
        tags { name value }
      }
    }
  }
}`

// TagFilter matches transactions carrying a tag with one of Values
type TagFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// GraphQLRequest is the body of a GraphQL POST
type GraphQLRequest struct {
	Query     string                `json:"query"`
	Variables TransactionsVariables `json:"variables"`
}

// TransactionsVariables parameterize TransactionsQuery
type TransactionsVariables struct {
	Tags  []TagFilter `json:"tags"`
	First int         `json:"first"`
	Order string      `json:"order"`
}

// Node is a single transaction in a GraphQL response
type Node struct {
	ID        string         `json:"id"`
	Address   string         `json:"address,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty"`
	Tags      []registry.Tag `json:"tags"`
}

// GraphQLResponse is the envelope returned by the gateway
type GraphQLResponse struct {
	Data struct {
		Transactions struct {
			Edges []struct {
				Node Node `json:"node"`
			} `json:"edges"`
		} `json:"transactions"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// NewTransactionsRequest builds a newest-first query for transactions
// matching every tag in filter
func NewTransactionsRequest(filter []registry.Tag, first int) GraphQLRequest {
	tf := make([]TagFilter, len(filter))
	for i, t := range filter {
		tf[i] = TagFilter{Name: t.Name, Values: []string{t.Value}}
	}
	return GraphQLRequest{
		Query: TransactionsQuery,
		Variables: TransactionsVariables{
			Tags:  tf,
			First: first,
			Order: "DESC",
		},
	}
}

// QueryByUsername fetches the most recent registration for username
func (c *Client) QueryByUsername(ctx context.Context, username string) (*registry.Record, error) {
	recs, err := c.transactions(ctx, registry.UsernameFilter(registry.Normalize(username)), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, registry.ErrNotFound
	}
	return recs[0], nil
}

// List fetches up to limit registrations, newest first
func (c *Client) List(ctx context.Context, limit int) ([]*registry.Record, error) {
	return c.transactions(ctx, registry.AppFilter(), limit)
}

// transactions runs a tag query, converting every failure into
// registry.ErrBackendUnavailable
func (c *Client) transactions(ctx context.Context, filter []registry.Tag, first int) ([]*registry.Record, error) {
	if c == nil || c.cfg == nil || c.cfg.GraphQLURL == "" {
		return nil, fmt.Errorf("%w: %s", registry.ErrBackendUnavailable, ErrNoRegistry)
	}

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout())
	defer cancel()

	res := GraphQLResponse{}
	status, err := c.doJSON(ctx, http.MethodPost, c.cfg.GraphQLURL, NewTransactionsRequest(filter, first), &res)
	if err != nil {
		log.Debugf("graphql query error: %s", err)
		return nil, fmt.Errorf("%w: %s", registry.ErrBackendUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: graphql status %d", registry.ErrBackendUnavailable, status)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("%w: graphql: %s", registry.ErrBackendUnavailable, res.Errors[0].Message)
	}

	recs := make([]*registry.Record, 0, len(res.Data.Transactions.Edges))
	for _, edge := range res.Data.Transactions.Edges {
		rec, err := registry.RecordFromTags(edge.Node.ID, edge.Node.Tags)
		if err != nil {
			log.Warnf("skipping malformed transaction: %s", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
