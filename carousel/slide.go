package carousel

// Slide is one carousel entry. ImageRef is an opaque URI; it is never
// fetched or decoded here.
type Slide struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageRef    string `json:"image_ref"`
}

// DefaultSlides returns the slides shown on the first-aid lesson sales page.
func DefaultSlides() []Slide {
	return []Slide{
		{
			Title:       "Capa Impactante",
			Description: "Design profissional que prende a atenção dos seus Desbravadores desde o primeiro minuto.",
			ImageRef:    "https://i.ibb.co/kgfTyK19/1.png",
		},
		{
			Title:       "Didática Facilitada",
			Description: "Slides de 'Estado de Choque' com fluxogramas simples para fácil entendimento.",
			ImageRef:    "https://i.ibb.co/fzQdzDP4/2.png",
		},
		{
			Title:       "Ilustração Prática",
			Description: "Passo a passo visual de Bandagens e Curativos sem imagens 'fortes' ou nojentas.",
			ImageRef:    "https://i.ibb.co/chRPVh8M/3.png",
		},
		{
			Title:       "Prova Pronta",
			Description: "Avaliação completa seguindo os requisitos da DSA. É só imprimir!",
			ImageRef:    "https://i.ibb.co/xt7yMnhG/4.png",
		},
		{
			Title:       "Gabarito Direto",
			Description: "Facilidade total para o instrutor: Gabaritos prontos para correção rápida.",
			ImageRef:    "https://i.ibb.co/ZRHL4wZw/5.png",
		},
	}
}
