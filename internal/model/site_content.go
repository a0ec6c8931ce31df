package model

import (
	"encoding/json"
	"fmt"
)

// Site content sections. Each is stored as one JSON document in the
// `site_content` table.
const (
	SectionHero      = "hero"
	SectionServices  = "services"
	SectionPortfolio = "portfolio"
	SectionContact   = "contact"
)

// Sections lists the editable sections in display order.
var Sections = []string{SectionHero, SectionServices, SectionPortfolio, SectionContact}

// SiteContent maps a section name to its JSON document.
type SiteContent map[string]json.RawMessage

// Merge returns the default document overridden by the stored sections.
func (c SiteContent) Merge() SiteContent {
	out := DefaultContent()
	for k, v := range c {
		if len(v) > 0 {
			out[k] = v
		}
	}
	return out
}

// DefaultContent returns the built-in document shown until an admin edits a
// section. The returned map is a fresh copy.
func DefaultContent() SiteContent {
	out := make(SiteContent, len(defaultSections))
	for k, v := range defaultSections {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

type stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type hero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Stats       []stat `json:"stats"`
}

type service struct {
	ID          string   `json:"id"`
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

type project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type contactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

var defaultSections = map[string]json.RawMessage{
	SectionHero: mustJSON(hero{
		Title:       "Créez votre",
		Subtitle:    "présence en ligne",
		Description: "Expert en conception, déploiement et refonte de sites web pour particuliers et professionnels. Transformez vos idées en réalité digitale.",
		Image:       "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b",
		Stats: []stat{
			{Number: "50+", Label: "Sites créés"},
			{Number: "100%", Label: "Satisfaction client"},
			{Number: "24h", Label: "Support"},
		},
	}),
	SectionServices: mustJSON([]service{
		{
			ID:          "conception",
			Icon:        "Code2",
			Title:       "Conception Web",
			Description: "Création sur mesure de sites web modernes et performants, adaptés à vos besoins et votre identité visuelle.",
			Features:    []string{"Design responsive", "UX/UI optimisée", "Technologies modernes"},
		},
		{
			ID:          "deploiement",
			Icon:        "Rocket",
			Title:       "Déploiement",
			Description: "Mise en ligne professionnelle avec hébergement sécurisé, nom de domaine et optimisation des performances.",
			Features:    []string{"Hébergement sécurisé", "Configuration SSL", "Optimisation SEO"},
		},
		{
			ID:          "refonte",
			Icon:        "RefreshCw",
			Title:       "Refonte",
			Description: "Modernisation de votre site existant pour améliorer les performances, le design et l'expérience utilisateur.",
			Features:    []string{"Audit complet", "Amélioration design", "Optimisation technique"},
		},
	}),
	SectionPortfolio: mustJSON([]project{
		{
			ID:          "ecommerce",
			Title:       "Site E-commerce",
			Category:    "Conception",
			Description: "Boutique en ligne complète avec paiement sécurisé",
			Image:       "https://images.unsplash.com/photo-1591439657848-9f4b9ce436b9",
		},
		{
			ID:          "portfolio-pro",
			Title:       "Portfolio Professionnel",
			Category:    "Refonte",
			Description: "Refonte complète d'un portfolio d'architecte",
			Image:       "https://images.unsplash.com/photo-1544717297-fa95b6ee9643",
		},
		{
			ID:          "app-web",
			Title:       "Application Web",
			Category:    "Déploiement",
			Description: "Déploiement d'une application de gestion",
			Image:       "https://images.unsplash.com/photo-1613203713329-b2e39e14c266",
		},
	}),
	SectionContact: mustJSON(contactInfo{
		Email:    "contact@getyoursite.com",
		Phone:    "+33 (0)1 23 45 67 89",
		Location: "France",
	}),
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("model: default content: %v", err))
	}
	return b
}
