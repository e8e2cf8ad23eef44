package config

const DefaultInformativePrompt = `You are a crisis informatics assistant.
Decide whether the tweet below is informative about a disaster (it reports an event, damage, casualties, needs or relief efforts) or non-informative.

Tweet: "%s"

Respond only in JSON format: {"label": "informative"} or {"label": "non-informative"}.`

const DefaultHumanitarianPrompt = `You are a crisis informatics assistant.
Classify the tweet below into exactly one humanitarian category from this list:
affected_individuals, infrastructure_and_utility_damage, injured_or_dead_people, missing_or_found_people, not_humanitarian, other_relevant_information, rescue_volunteering_or_donation_effort, vehicle_damage.

Tweet: "%s"

Respond only in JSON format: {"category": "<one category from the list>"}.`

const DefaultEventPrompt = `You are an expert in extracting structured information from tweets about disasters.
Given the tweet and existing event summary, return a JSON with important details about the event.
The JSON may include the following fields:
- event_type
- locations (separated by comma)
- people_killed (just number)
- people_trapped (just number)
- infrastructure_damage
- any other details you find relevant
- summary (updated, more detailed)
- category (category mentioned at last of tweet)

Tweet: "%s"
Existing Event Summary: "%s"

Respond only in JSON format.`

const DefaultMergePrompt = `You are combining reports of the same disaster event.
Write one concise, factual summary that keeps every distinct detail from the summaries below and drops repetition.

Summaries:
%s

Respond only in JSON format: {"summary": "<merged summary>"}.`
