package services

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// Entry updates and removals must address the entry inside the filter.
// Filtering on the owner alone would let the updated_at write report a
// modification even when the entry id does not exist.
func TestEntryFilterScopesOwnerAndEntry(t *testing.T) {
	got := entryFilter("user-1", "education", "entry-1")
	want := bson.M{"user_id": "user-1", "education.id": "entry-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entryFilter = %v, want %v", got, want)
	}
}

func TestListUpdatesNormalizeNilValues(t *testing.T) {
	empty := []string{}

	add := addToSetUpdate("skills", nil)
	if got := add["$addToSet"].(bson.M)["skills"].(bson.M)["$each"]; !reflect.DeepEqual(got, empty) {
		t.Errorf("$each = %#v, want empty list", got)
	}

	pull := pullAllUpdate("tools", nil)
	if got := pull["$pullAll"].(bson.M)["tools"]; !reflect.DeepEqual(got, empty) {
		t.Errorf("$pullAll = %#v, want empty list", got)
	}

	repl := replaceListUpdate("skills", nil)
	if got := repl["$set"].(bson.M)["skills"]; !reflect.DeepEqual(got, empty) {
		t.Errorf("$set = %#v, want empty list", got)
	}
}

func TestListUpdatesKeepProvidedValues(t *testing.T) {
	values := []string{"Go", "Docker"}

	add := addToSetUpdate("skills", values)
	if got := add["$addToSet"].(bson.M)["skills"].(bson.M)["$each"]; !reflect.DeepEqual(got, values) {
		t.Errorf("$each = %#v, want %v", got, values)
	}

	pull := pullAllUpdate("skills", values)
	if got := pull["$pullAll"].(bson.M)["skills"]; !reflect.DeepEqual(got, values) {
		t.Errorf("$pullAll = %#v, want %v", got, values)
	}
}
