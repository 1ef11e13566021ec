package web

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreyaw333/portfolio/internal/content"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

// pageData is what every template receives.
type pageData struct {
	Site       *content.Site
	About      template.HTML
	Typewriter typewriter.State
	Caret      string
}

// sectionTemplates maps section ids to the template that renders them.
var sectionTemplates = map[string]string{
	content.SectionHome:       "hero",
	content.SectionAbout:      "about",
	content.SectionExperience: "experience",
	content.SectionTechStack:  "techstack",
	content.SectionProjects:   "projects",
}

func (s *Server) page() pageData {
	return pageData{
		Site:       s.site,
		About:      s.about,
		Typewriter: typewriter.Initial(s.site.Profile.Roles),
		Caret:      typewriter.Caret,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page())
}

// handleSection renders one section as an HTMX fragment.
func (s *Server) handleSection(c *gin.Context) {
	name, ok := sectionTemplates[c.Param("id")]
	if !ok {
		c.String(http.StatusNotFound, "section not found")
		return
	}
	c.HTML(http.StatusOK, name, s.page())
}

func (s *Server) handleSite(c *gin.Context) {
	c.JSON(http.StatusOK, s.site)
}
