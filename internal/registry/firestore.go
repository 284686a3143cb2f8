package registry

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore is the production registry: a Firestore collection of brand
// documents with loosely schemaed fields.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// FirestoreOptions configure the Firestore registry connection.
type FirestoreOptions struct {
	ProjectID       string
	CredentialsFile string
	Collection      string
}

// OpenFirestore connects to the configured project and collection. A
// connection failure here is fatal for the run; nothing is processed
// without a registry.
func OpenFirestore(ctx context.Context, opts FirestoreOptions) (*Firestore, error) {
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("firestore registry requires a project id")
	}
	collection := opts.Collection
	if collection == "" {
		collection = "brands"
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("connect firestore: %w", err)
	}

	return &Firestore{client: client, collection: collection}, nil
}

// Close releases the Firestore client.
func (f *Firestore) Close() error {
	if f == nil || f.client == nil {
		return nil
	}
	return f.client.Close()
}

// ListAll streams every document in the collection. The iteration order is
// captured once per run and becomes the tie-break order for matching.
// Display names are resolved by probing the collection's documents for a
// well-known name field.
func (f *Firestore) ListAll(ctx context.Context) ([]Entity, error) {
	iter := f.client.Collection(f.collection).Documents(ctx)
	defer iter.Stop()

	var entities []Entity
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream %s collection: %w", f.collection, err)
		}
		entities = append(entities, Entity{ID: doc.Ref.ID, Fields: doc.Data()})
	}

	nameField := NameField(entities)
	for i := range entities {
		entities[i].Name = DisplayName(entities[i].Fields, nameField)
	}
	return entities, nil
}

// Add creates a new brand document with an auto-generated id.
func (f *Firestore) Add(ctx context.Context, name string, fields map[string]any) (Entity, error) {
	data := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		data[key] = value
	}
	data["name"] = name

	ref := f.client.Collection(f.collection).NewDoc()
	if _, err := ref.Set(ctx, data); err != nil {
		return Entity{}, fmt.Errorf("add %s document: %w", f.collection, err)
	}
	return Entity{ID: ref.ID, Name: name, Fields: data}, nil
}

// MergeField reads the named mapping field of a document, overlays updates
// with new values winning, and writes the merged mapping back. There is no
// transaction around the read and write; the run lock keeps writers single.
func (f *Firestore) MergeField(ctx context.Context, id, field string, updates map[string]any) error {
	ref := f.client.Collection(f.collection).Doc(id)

	snapshot, err := ref.Get(ctx)
	if err != nil {
		return fmt.Errorf("read %s/%s: %w", f.collection, id, err)
	}

	existing, _ := snapshot.Data()[field].(map[string]any)
	merged := make(map[string]any, len(existing)+len(updates))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}

	if _, err := ref.Update(ctx, []firestore.Update{{Path: field, Value: merged}}); err != nil {
		return fmt.Errorf("update %s on %s/%s: %w", field, f.collection, id, err)
	}
	return nil
}

// SetFields overwrites the given document fields unconditionally.
func (f *Firestore) SetFields(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	fieldUpdates := make([]firestore.Update, 0, len(updates))
	for key, value := range updates {
		fieldUpdates = append(fieldUpdates, firestore.Update{Path: key, Value: value})
	}

	ref := f.client.Collection(f.collection).Doc(id)
	if _, err := ref.Update(ctx, fieldUpdates); err != nil {
		return fmt.Errorf("set fields on %s/%s: %w", f.collection, id, err)
	}
	return nil
}
