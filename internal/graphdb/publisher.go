package graphdb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
)

const upsertPersonCypher = `
MERGE (p:Person {id: $id})
SET p += $props
WITH p
UNWIND $parents AS parentId
MERGE (q:Person {id: parentId})
MERGE (q)-[:PARENT_OF]->(p)
`

const upsertMarriageCypher = `
MERGE (a:Person {id: $aId})
MERGE (b:Person {id: $bId})
MERGE (a)-[m:MARRIED_TO]->(b)
SET m += $props
`

// Publisher mirrors the kinship network into a graph database so it can be
// explored with Cypher: Person nodes carrying identity attributes, and
// PARENT_OF / MARRIED_TO edges. Publishing is one-way; nothing is read back.
type Publisher struct {
	client  Client
	workers int
}

// NewPublisher creates a Publisher with the provided write concurrency.
func NewPublisher(client Client, workers int) *Publisher {
	if workers <= 0 {
		workers = 4
	}
	return &Publisher{client: client, workers: workers}
}

// PublishPerson upserts one Person node with its parent edges. Parents are
// merged as bare nodes; their own upsert fills in the attributes.
func (p *Publisher) PublishPerson(ctx context.Context, person domain.Person) error {
	parents := []int{}
	if person.HasFather() {
		parents = append(parents, int(person.FatherID))
	}
	if person.HasMother() {
		parents = append(parents, int(person.MotherID))
	}

	params := map[string]any{
		"id":      int(person.ID),
		"parents": parents,
		"props": map[string]any{
			"name":       person.Name,
			"sex":        person.Sex,
			"birthYear":  person.BirthYear,
			"bestDob":    person.BestDOB,
			"bestDod":    person.BestDOD,
			"legitimacy": person.Legitimacy,
		},
	}
	if _, err := p.client.ExecuteWrite(ctx, upsertPersonCypher, params); err != nil {
		return fmt.Errorf("publish person %d: %w", person.ID, err)
	}
	return nil
}

// PublishMarriage upserts one MARRIED_TO edge. The edge runs from the lower
// ID to the higher, matching the normalized pair, so re-publishing never
// creates a parallel edge in the opposite direction.
func (p *Publisher) PublishMarriage(ctx context.Context, m domain.Marriage) error {
	params := map[string]any{
		"aId": int(m.Pair.A),
		"bId": int(m.Pair.B),
		"props": map[string]any{
			"type":      m.Type,
			"date":      m.Date,
			"endDate":   m.EndDate,
			"endReason": m.EndReason,
		},
	}
	if _, err := p.client.ExecuteWrite(ctx, upsertMarriageCypher, params); err != nil {
		return fmt.Errorf("publish marriage %d-%d: %w", m.Pair.A, m.Pair.B, err)
	}
	return nil
}

// PublishAll mirrors the whole network: every person concurrently, then
// every marriage. Individual failures are collected and joined; context
// cancellation aborts between writes.
func (p *Publisher) PublishAll(ctx context.Context, people map[domain.PersonID]domain.Person, marriages genealogy.MarriageSet) error {
	ids := make([]domain.PersonID, 0, len(people))
	for id := range people {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if err := p.fanOut(ctx, len(ids), func(idx int) error {
		return p.PublishPerson(ctx, people[ids[idx]])
	}); err != nil {
		return err
	}

	pairs := make([]domain.SpousePair, 0, len(marriages.ByPair))
	for pair := range marriages.ByPair {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	return p.fanOut(ctx, len(pairs), func(idx int) error {
		return p.PublishMarriage(ctx, marriages.ByPair[pairs[idx]])
	})
}

func (p *Publisher) fanOut(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
