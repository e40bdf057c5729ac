package model

type Company struct {
	Ticker   string
	Name     string
	Category string
}

type CompanyGroup struct {
	ID        string
	Name      string
	Companies []Company
}
