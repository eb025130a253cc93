package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestChouquetteGetFiltersForCategory(t *testing.T) {
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chouquette/v1/criteria/category/5" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id": 30, "name": "Cuisine", "taxonomy": "cq_cuisine", "values": []}]`)
	}))

	criteria, err := services.Chouquette.GetFiltersForCategory(context.Background(), 5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(criteria) != 1 || criteria[0].Taxonomy != "cq_cuisine" {
		t.Fatalf("unexpected criteria %+v", criteria)
	}
}

func TestChouquetteGetFiltersForFicheFlattensGroups(t *testing.T) {
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chouquette/v1/criteria/fiche/101" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[
			[{"id": 30, "name": "Cuisine", "taxonomy": "cq_cuisine", "values": []}],
			[{"id": 40, "name": "Ambiance", "taxonomy": "cq_ambiance", "values": []}]
		]`)
	}))

	criteria, err := services.Chouquette.GetFiltersForFiche(context.Background(), 101)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(criteria) != 2 || criteria[1].Taxonomy != "cq_ambiance" {
		t.Fatalf("unexpected criteria %+v", criteria)
	}
}

func TestChouquettePostContact(t *testing.T) {
	var got StaffContactInput
	services, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chouquette/v1/contact" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{}`))
	}))

	err := services.Chouquette.PostContact(context.Background(), StaffContactInput{
		Name: "V", Email: "v@x.ch", Subject: "Question", Message: "Bonjour", Recaptcha: "tok",
	})
	if err != nil {
		t.Fatalf("contact failed: %v", err)
	}
	if got.Subject != "Question" {
		t.Fatalf("unexpected payload %+v", got)
	}
}
