package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt64, Increment: true}
}

func textColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: 2147483647}
}

func intColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Default: 0}
}

var (
	plansTable = schema.NewTable("plans").
			AddPrimary(idColumn()).
			AddColumn(textColumn("user_id")).
			AddColumn(textColumn("payload")).
			AddColumn(textColumn("created_at")).
			AddIndex("plans_user_id", false, []string{"user_id"})

	testsTable = schema.NewTable("tests").
			AddPrimary(idColumn()).
			AddColumn(textColumn("user_id")).
			AddColumn(textColumn("payload")).
			AddColumn(textColumn("created_at")).
			AddIndex("tests_user_id", false, []string{"user_id"})

	resultsTable = schema.NewTable("test_results").
			AddPrimary(idColumn()).
			AddColumn(textColumn("user_id")).
			AddColumn(textColumn("payload")).
			AddColumn(intColumn("correct")).
			AddColumn(intColumn("wrong")).
			AddColumn(textColumn("created_at")).
			AddIndex("test_results_user_id", false, []string{"user_id"})

	llmEventsTable = schema.NewTable("llm_request_events").
			AddPrimary(idColumn()).
			AddColumn(textColumn("created_at")).
			AddColumn(textColumn("request_id")).
			AddColumn(textColumn("provider")).
			AddColumn(textColumn("model")).
			AddColumn(textColumn("purpose")).
			AddColumn(intColumn("input_tokens")).
			AddColumn(intColumn("output_tokens")).
			AddColumn(intColumn("latency_ms")).
			AddColumn(&schema.Column{Name: "success", Type: field.TypeBool, Default: false}).
			AddColumn(textColumn("error_message")).
			AddColumn(textColumn("request_body")).
			AddColumn(textColumn("response_body")).
			AddIndex("llm_request_events_purpose", false, []string{"purpose"})
)

// Tables lists every table the store creates at open.
var Tables = []*schema.Table{plansTable, testsTable, resultsTable, llmEventsTable}
