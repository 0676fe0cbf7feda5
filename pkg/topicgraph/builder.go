package topicgraph

// EntityDescriptor is one side of a normalized row.
type EntityDescriptor struct {
	Key       string
	TopicID   string
	TopicName string
	Label     string
}

// Record is a normalized row: two entities and the relation between them.
type Record struct {
	From EntityDescriptor
	To   EntityDescriptor
}

// Dataset bundles the graph with its topic registry.
type Dataset struct {
	Graph  *Graph
	Topics *Registry
}

// Builder accumulates records into a [Dataset].
type Builder struct {
	graph  *Graph
	topics *Registry
}

// NewBuilder creates a builder with an empty graph and registry.
func NewBuilder() *Builder {
	return &Builder{graph: New(), topics: NewRegistry()}
}

// Add folds one record into the dataset. The "to" topic is registered
// before the "from" topic, which decides first-write-wins ties inside a
// single row. Self-relations are accepted and produce no edge.
func (b *Builder) Add(rec Record) {
	b.topics.Register(rec.To.TopicID, rec.To.TopicName)
	b.topics.Register(rec.From.TopicID, rec.From.TopicName)

	b.graph.UpsertEntity(rec.From.Key, rec.From.TopicID, rec.From.Label)
	b.graph.UpsertEntity(rec.To.Key, rec.To.TopicID, rec.To.Label)

	// Both endpoints exist at this point; the only possible error is an
	// empty key, which the normalizer already rejects.
	_, _ = b.graph.UpsertRelation(rec.From.Key, rec.To.Key)
}

// AddAll folds every record in order.
func (b *Builder) AddAll(recs []Record) {
	for _, r := range recs {
		b.Add(r)
	}
}

// Dataset returns the accumulated graph and registry.
func (b *Builder) Dataset() Dataset {
	return Dataset{Graph: b.graph, Topics: b.topics}
}
