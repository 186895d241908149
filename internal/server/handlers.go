package server

import (
	"net/http"
	"strconv"

	"github.com/SEA6153/tableview/internal/filter"
	"github.com/SEA6153/tableview/internal/resolver"
	"github.com/SEA6153/tableview/pkg/records"
)

// tablesView is the reply of table-level operations.
type tablesView struct {
	Catalog       []string       `json:"catalog"`
	Tables        []string       `json:"tables"`
	Selected      string         `json:"selected,omitempty"`
	PendingRename *pendingRename `json:"pending_rename,omitempty"`
}

type pendingRename struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// recordsView is the reply of record-level operations.
type recordsView struct {
	Table     string            `json:"table,omitempty"`
	Records   []*records.Record `json:"records"`
	Total     int               `json:"total"`
	Staged    *records.Record   `json:"staged"`
	ValidNew  bool              `json:"valid_new"`
	Edited    *records.Record   `json:"edited,omitempty"`
	ValidEdit bool              `json:"valid_edit"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type renameRequest struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

type commitRenameRequest struct {
	Name *string `json:"name"`
}

func tablesOf(store *records.Store, catalog *records.Catalog) *tablesView {
	v := &tablesView{
		Catalog: catalog.Names(),
		Tables:  store.TableNames(),
	}
	if name, ok := store.Selected(); ok {
		v.Selected = name
	}
	if name, index, ok := catalog.PendingRename(); ok {
		v.PendingRename = &pendingRename{Name: name, Index: index}
	}
	return v
}

func recordsOf(store *records.Store, criteria *filter.Criteria) *recordsView {
	list := store.Records()
	v := &recordsView{
		Records:   list,
		Total:     len(list),
		Staged:    store.StagedItem(),
		ValidNew:  store.ValidNewItem(),
		Edited:    store.EditedItem(),
		ValidEdit: store.ValidEditedItem(),
	}
	if name, ok := store.Selected(); ok {
		v.Table = name
	}
	if criteria != nil {
		v.Records = criteria.Apply(list)
	}
	return v
}

// criteriaFrom parses the record filter query parameters.
func criteriaFrom(r *http.Request) (*filter.Criteria, error) {
	q := r.URL.Query()
	c := &filter.Criteria{
		ArtistGlob: q.Get("artist"),
		SongGlob:   q.Get("song"),
	}

	for param, dst := range map[string]*int{"since": &c.SinceYear, "until": &c.UntilYear} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			return nil, &requestError{msg: "invalid " + param + " year: " + raw}
		}
		*dst = year
	}
	return c, nil
}

// findRecord resolves a full or short record ID in the selected table.
func findRecord(store *records.Store, id string) (*records.Record, error) {
	rec, err := resolver.ResolveRecord(store.Records(), id)
	if err != nil && !resolver.IsNotFoundError(err) && !resolver.IsAmbiguousError(err) {
		return nil, &requestError{msg: err.Error()}
	}
	return rec, err
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func(store *records.Store, catalog *records.Catalog) (any, error) {
		return tablesOf(store, catalog), nil
	})
}

func (s *Server) handleAddCatalogName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusCreated, func(store *records.Store, catalog *records.Catalog) (any, error) {
		err := catalog.Add(req.Name)
		return tablesOf(store, catalog), err
	})
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusCreated, func(store *records.Store, catalog *records.Catalog) (any, error) {
		err := store.CreateTable(req.Name)
		return tablesOf(store, catalog), err
	})
}

func (s *Server) handleRemoveTable(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.run(w, r, http.StatusOK, func(store *records.Store, catalog *records.Catalog) (any, error) {
		if !catalog.Remove(name) {
			return nil, &records.NotFoundError{Kind: "table", Name: name}
		}
		return tablesOf(store, catalog), nil
	})
}

func (s *Server) handlePrepareRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, catalog *records.Catalog) (any, error) {
		err := catalog.PrepareRename(req.Name, req.Index)
		return tablesOf(store, catalog), err
	})
}

func (s *Server) handleCommitRename(w http.ResponseWriter, r *http.Request) {
	var req commitRenameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, catalog *records.Catalog) (any, error) {
		if req.Name != nil && !catalog.SetPendingName(*req.Name) {
			return nil, &records.NotFoundError{Kind: "pending rename"}
		}
		err := catalog.CommitRename()
		return tablesOf(store, catalog), err
	})
}

// handleSelect always succeeds: an unmatched name is still selected and the
// store's notice tells the client the list is empty.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		if err := store.SelectTable(req.Name); err != nil && !records.IsNotFound(err) {
			return nil, err
		}
		return recordsOf(store, nil), nil
	})
}

func (s *Server) handleLoadDefaults(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func(store *records.Store, catalog *records.Catalog) (any, error) {
		store.LoadDefaults()
		return tablesOf(store, catalog), nil
	})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		return recordsOf(store, criteria), nil
	})
}

func (s *Server) handleStageNew(w http.ResponseWriter, r *http.Request) {
	var fields records.Fields
	if err := decode(r, &fields); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		store.StageNewItem(fields)
		return recordsOf(store, nil), nil
	})
}

func (s *Server) handleCommitNew(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusCreated, func(store *records.Store, _ *records.Catalog) (any, error) {
		err := store.CommitNewItem()
		return recordsOf(store, nil), err
	})
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		rec, err := findRecord(store, id)
		if err != nil {
			return nil, err
		}
		if err := store.BeginEdit(rec); err != nil {
			return nil, err
		}
		return recordsOf(store, nil), nil
	})
}

func (s *Server) handleStageEdit(w http.ResponseWriter, r *http.Request) {
	var fields records.Fields
	if err := decode(r, &fields); err != nil {
		writeError(w, err)
		return
	}
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		err := store.StageEdit(fields)
		return recordsOf(store, nil), err
	})
}

func (s *Server) handleCommitEdit(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		err := store.CommitEdit()
		return recordsOf(store, nil), err
	})
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		store.CancelEdit()
		return recordsOf(store, nil), nil
	})
}

// handleDeleteRecord deletes by full ID or unique prefix. An unknown ID
// still goes through the store so the client gets its "not found" notice.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.run(w, r, http.StatusOK, func(store *records.Store, _ *records.Catalog) (any, error) {
		rec, err := findRecord(store, id)
		switch {
		case resolver.IsNotFoundError(err):
			rec = &records.Record{ID: id}
		case err != nil:
			return nil, err
		}
		err = store.DeleteItem(rec)
		return recordsOf(store, nil), err
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	ended := false
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		ended = s.registry.End(r.Context(), c.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, response{Data: map[string]bool{"ended": ended}})
}
