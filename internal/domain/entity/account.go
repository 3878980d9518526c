package entity

// Account representa uma conta Cloudflare acessível pelo token configurado.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Zone representa uma zona pertencente a uma conta durante uma execução.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
