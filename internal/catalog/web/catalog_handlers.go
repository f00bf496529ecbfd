package web

import (
	"net/http"

	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/pkg/httpx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

func (r *Router) renderFailure(w http.ResponseWriter, req *http.Request, what string, err error) {
	slogx.FromContext(req.Context()).Error(what, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, what)
}

// --- Musicians ---

func (r *Router) renderMusicians(w http.ResponseWriter, req *http.Request, title string, musicians []domain.Musician) {
	data := struct {
		Page
		Musicians []domain.Musician
	}{r.page(w, req, title), musicians}
	r.renderer.Render(w, req, http.StatusOK, "musicians.html", data)
}

func (r *Router) handleMusiciansPage(w http.ResponseWriter, req *http.Request) {
	musicians, err := r.Catalog.ListMusicians(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list musicians", err)
		return
	}
	r.renderMusicians(w, req, "Manage musicians", musicians)
}

func (r *Router) handleMusicianCreate(w http.ResponseWriter, req *http.Request) {
	m, err := r.Catalog.CreateMusician(req.Context(), req.FormValue("full_name"))
	if err != nil {
		r.flash.Set(w, "error", "Musician not added: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Musician added: "+m.FullName)
	}
	redirect(w, req, "/musicians")
}

func (r *Router) handleMusicianUpdate(w http.ResponseWriter, req *http.Request) {
	err := r.Catalog.UpdateMusician(req.Context(), req.PathValue("id"), req.FormValue("full_name"))
	if err != nil {
		r.flash.Set(w, "error", "Musician not updated: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Musician updated")
	}
	redirect(w, req, "/musicians")
}

func (r *Router) handleMusicianDelete(w http.ResponseWriter, req *http.Request) {
	if err := r.Catalog.DeleteMusician(req.Context(), req.PathValue("id")); err != nil {
		r.flash.Set(w, "error", "Musician not deleted: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Musician deleted")
	}
	redirect(w, req, "/musicians")
}

// handleMusicianFind renders the manage page filtered to the searched
// prefix. Results come straight from the query, shared by nobody.
func (r *Router) handleMusicianFind(w http.ResponseWriter, req *http.Request) {
	musicians, err := r.Catalog.FindMusicians(req.Context(), req.FormValue("name"))
	if err != nil {
		r.renderFailure(w, req, "could not search musicians", err)
		return
	}
	r.renderMusicians(w, req, "Musician(s) found", musicians)
}

func (r *Router) handleMusiciansPrint(w http.ResponseWriter, req *http.Request) {
	musicians, err := r.Catalog.ListMusicians(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list musicians", err)
		return
	}
	data := struct {
		Page
		Musicians []domain.Musician
	}{r.page(w, req, "List of musicians"), musicians}
	r.renderer.Render(w, req, http.StatusOK, "musicians_print.html", data)
}

// --- Genres ---

func (r *Router) renderGenres(w http.ResponseWriter, req *http.Request, title string, genres []domain.Genre) {
	data := struct {
		Page
		Genres []domain.Genre
	}{r.page(w, req, title), genres}
	r.renderer.Render(w, req, http.StatusOK, "genres.html", data)
}

func (r *Router) handleGenresPage(w http.ResponseWriter, req *http.Request) {
	genres, err := r.Catalog.ListGenres(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list genres", err)
		return
	}
	r.renderGenres(w, req, "Manage genres", genres)
}

func (r *Router) handleGenreCreate(w http.ResponseWriter, req *http.Request) {
	g, err := r.Catalog.CreateGenre(req.Context(), req.FormValue("name"))
	if err != nil {
		r.flash.Set(w, "error", "Genre not added: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Genre added: "+g.Name)
	}
	redirect(w, req, "/genres")
}

func (r *Router) handleGenreUpdate(w http.ResponseWriter, req *http.Request) {
	err := r.Catalog.UpdateGenre(req.Context(), req.PathValue("id"), req.FormValue("name"))
	if err != nil {
		r.flash.Set(w, "error", "Genre not updated: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Genre updated")
	}
	redirect(w, req, "/genres")
}

func (r *Router) handleGenreDelete(w http.ResponseWriter, req *http.Request) {
	if err := r.Catalog.DeleteGenre(req.Context(), req.PathValue("id")); err != nil {
		r.flash.Set(w, "error", "Genre not deleted: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Genre deleted")
	}
	redirect(w, req, "/genres")
}

func (r *Router) handleGenreFind(w http.ResponseWriter, req *http.Request) {
	genres, err := r.Catalog.FindGenres(req.Context(), req.FormValue("name"))
	if err != nil {
		r.renderFailure(w, req, "could not search genres", err)
		return
	}
	r.renderGenres(w, req, "Genre(s) found", genres)
}

func (r *Router) handleGenresPrint(w http.ResponseWriter, req *http.Request) {
	genres, err := r.Catalog.ListGenres(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list genres", err)
		return
	}
	data := struct {
		Page
		Genres []domain.Genre
	}{r.page(w, req, "List of genres"), genres}
	r.renderer.Render(w, req, http.StatusOK, "genres_print.html", data)
}

// --- Scores ---

// renderScores renders the manage page. Musicians and genres ride along to
// fill the datalists of the entry form.
func (r *Router) renderScores(w http.ResponseWriter, req *http.Request, title string, scores []domain.ScoreListing) {
	ctx := req.Context()

	musicians, err := r.Catalog.ListMusicians(ctx)
	if err != nil {
		r.renderFailure(w, req, "could not list musicians", err)
		return
	}
	genres, err := r.Catalog.ListGenres(ctx)
	if err != nil {
		r.renderFailure(w, req, "could not list genres", err)
		return
	}

	data := struct {
		Page
		Scores    []domain.ScoreListing
		Musicians []domain.Musician
		Genres    []domain.Genre
	}{r.page(w, req, title), scores, musicians, genres}
	r.renderer.Render(w, req, http.StatusOK, "scores.html", data)
}

func (r *Router) handleScoresPage(w http.ResponseWriter, req *http.Request) {
	scores, err := r.Catalog.ListScores(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list scores", err)
		return
	}
	r.renderScores(w, req, "Manage scores", scores)
}

func (r *Router) handleScoreCreate(w http.ResponseWriter, req *http.Request) {
	score, err := r.Catalog.CreateScore(req.Context(),
		req.FormValue("title"), req.FormValue("full_name"), req.FormValue("name"))
	if err != nil {
		r.flash.Set(w, "error", "Score not added: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Score added: "+score.Title)
	}
	redirect(w, req, "/scores")
}

func (r *Router) handleScoreUpdate(w http.ResponseWriter, req *http.Request) {
	err := r.Catalog.UpdateScore(req.Context(), req.PathValue("id"),
		req.FormValue("title"), req.FormValue("full_name"), req.FormValue("name"))
	if err != nil {
		r.flash.Set(w, "error", "Score not updated: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Score updated")
	}
	redirect(w, req, "/scores")
}

func (r *Router) handleScoreDelete(w http.ResponseWriter, req *http.Request) {
	if err := r.Catalog.DeleteScore(req.Context(), req.PathValue("id")); err != nil {
		r.flash.Set(w, "error", "Score not deleted: "+err.Error())
	} else {
		r.flash.Set(w, "success", "Score deleted")
	}
	redirect(w, req, "/scores")
}

func (r *Router) handleScoreFindTitle(w http.ResponseWriter, req *http.Request) {
	scores, err := r.Catalog.FindScoresByTitle(req.Context(), req.FormValue("name"))
	if err != nil {
		r.renderFailure(w, req, "could not search scores", err)
		return
	}
	r.renderScores(w, req, "Score(s) found", scores)
}

func (r *Router) handleScoreFindMusician(w http.ResponseWriter, req *http.Request) {
	scores, err := r.Catalog.FindScoresByMusician(req.Context(), req.FormValue("name"))
	if err != nil {
		r.renderFailure(w, req, "could not search scores", err)
		return
	}
	r.renderScores(w, req, "Score(s) found", scores)
}

func (r *Router) handleScoreFindGenre(w http.ResponseWriter, req *http.Request) {
	scores, err := r.Catalog.FindScoresByGenre(req.Context(), req.FormValue("name"))
	if err != nil {
		r.renderFailure(w, req, "could not search scores", err)
		return
	}
	r.renderScores(w, req, "Score(s) found", scores)
}

func (r *Router) handleScoresPrint(w http.ResponseWriter, req *http.Request) {
	scores, err := r.Catalog.ListScores(req.Context())
	if err != nil {
		r.renderFailure(w, req, "could not list scores", err)
		return
	}
	data := struct {
		Page
		Scores []domain.ScoreListing
	}{r.page(w, req, "List of scores"), scores}
	r.renderer.Render(w, req, http.StatusOK, "scores_print.html", data)
}
