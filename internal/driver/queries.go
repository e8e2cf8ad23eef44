package driver

const (
	// Events keep their full JSON document in payload so field order and
	// free-form fields survive the round trip. seq preserves insertion order.
	SaveEventQuery = `
		MERGE (e:Event {id: $id})
		ON CREATE SET e.seq = $seq
		SET e.payload = $payload,
			e.event_type = $event_type,
			e.category = $category,
			e.summary = $summary,
			e.timestamp = $timestamp
		WITH e
		OPTIONAL MATCH (e)-[old:OCCURRED_AT]->(:Location)
		DELETE old
		WITH DISTINCT e
		FOREACH (name IN $locations |
			MERGE (l:Location {key: toLower(name)})
			ON CREATE SET l.name = name
			MERGE (e)-[:OCCURRED_AT]->(l)
		)
		RETURN e.id AS id
	`

	GetEventQuery = `
		MATCH (e:Event {id: $id})
		RETURN e.payload AS payload
	`

	ListEventsQuery = `
		MATCH (e:Event)
		RETURN e.payload AS payload
		ORDER BY e.seq ASC
	`

	MaxSeqQuery = `
		MATCH (e:Event)
		RETURN coalesce(max(e.seq), 0) AS seq
	`

	DeleteEventsQuery = `
		MATCH (e:Event)
		WHERE e.id IN $ids
		WITH collect(e) AS events, collect(e.id) AS ids
		FOREACH (e IN events | DETACH DELETE e)
		RETURN ids
	`

	DeleteAllEventsQuery = `
		MATCH (e:Event)
		DETACH DELETE e
	`

	// Locations no event points at any more.
	PruneLocationsQuery = `
		MATCH (l:Location)
		WHERE NOT (l)<-[:OCCURRED_AT]-(:Event)
		DELETE l
	`

	ExistingIDsQuery = `
		MATCH (e:Event)
		WHERE e.id IN $ids
		RETURN collect(e.id) AS ids
	`

	CountEventsQuery = `
		MATCH (e:Event)
		RETURN count(e) AS count
	`
)

var IndexQueries = []string{
	"CREATE INDEX ON :Event(id);",
	"CREATE INDEX ON :Event(seq);",
	"CREATE INDEX ON :Location(key);",
}
