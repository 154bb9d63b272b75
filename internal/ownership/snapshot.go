// Package ownership keeps per-wallet NFT ownership snapshots fresh from an
// external indexer, serving stale data when the indexer is down.
package ownership

import (
	"context"
	"time"
)

// Nft is a normalized ownership record.
type Nft struct {
	Address        string `json:"address"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	CollectionName string `json:"collection_name"`
}

type Snapshot struct {
	Key       string    `json:"key"`
	Items     []Nft     `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Clone returns a copy that shares no memory with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Items = make([]Nft, len(s.Items))
	copy(out.Items, s.Items)
	return &out
}

// Find returns the record for an NFT address.
func (s *Snapshot) Find(address string) (Nft, bool) {
	for _, item := range s.Items {
		if item.Address == address {
			return item, true
		}
	}
	return Nft{}, false
}

type Preview struct {
	Resolution string
	URL        string
}

type RawMetadata struct {
	Name        string
	Description string
	Image       string
}

type RawCollection struct {
	Name string
}

// RawRecord is an item as returned by the indexer, before normalization.
type RawRecord struct {
	Address    string
	Metadata   *RawMetadata
	Previews   []Preview
	Collection *RawCollection
}

// Source fetches the current ownership of a wallet.
type Source interface {
	Fetch(ctx context.Context, owner string, limit int) ([]RawRecord, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context, owner string, limit int) ([]RawRecord, error)

func (f SourceFunc) Fetch(ctx context.Context, owner string, limit int) ([]RawRecord, error) {
	return f(ctx, owner, limit)
}

// Normalize converts raw records into Nfts. Records without both a metadata and
// a collection object are dropped. The image falls back to the last preview.
func Normalize(raw []RawRecord) []Nft {
	items := make([]Nft, 0, len(raw))
	for _, r := range raw {
		if r.Metadata == nil || r.Collection == nil {
			continue
		}

		nft := Nft{
			Address:        r.Address,
			Name:           r.Metadata.Name,
			Description:    r.Metadata.Description,
			Image:          r.Metadata.Image,
			CollectionName: r.Collection.Name,
		}
		if nft.Image == "" && len(r.Previews) > 0 {
			nft.Image = r.Previews[len(r.Previews)-1].URL
		}

		items = append(items, nft)
	}
	return items
}
