package company

import (
	"strings"

	"github.com/bme3412/q2-software/internal/model"
)

// Static Q2 2025 coverage universe, grouped by sector.

func group(id, name string, companies ...model.Company) model.CompanyGroup {
	for i := range companies {
		companies[i].Category = id
	}
	return model.CompanyGroup{ID: id, Name: name, Companies: companies}
}

func c(ticker, name string) model.Company {
	return model.Company{Ticker: ticker, Name: name}
}

var groups = []model.CompanyGroup{
	group("ad-tech", "Ad Tech",
		c("APP", "AppLovin Corporation"),
		c("BRZE", "Braze Inc"),
		c("DV", "DoubleVerify Holdings"),
		c("IAS", "Integral Ad Science"),
		c("KVYO", "Klaviyo Inc"),
		c("SEMR", "Semrush Holdings"),
		c("SPT", "Sprout Social"),
		c("TTD", "The Trade Desk"),
		c("ZETA", "Zeta Global Holdings"),
	),
	group("commerce-webplatform", "Commerce & Web Platform",
		c("LSPD-CN", "Lightspeed Commerce"),
		c("SHOP", "Shopify Inc"),
	),
	group("data-ai-analytics", "Data, AI & Analytics",
		c("AI", "C3.ai Inc"),
		c("AMPL", "Amplitude Inc"),
		c("DOMO", "Domo Inc"),
		c("INFA", "Informatica Inc"),
		c("MSTR", "MicroStrategy Inc"),
		c("NXL-AU", "Nuix Ltd"),
		c("PLTR", "Palantir Technologies"),
		c("TDC", "Teradata Corporation"),
	),
	group("data-ai-apac", "Data, AI & Analytics (APAC)",
		c("KC", "Kingsoft Cloud Holdings"),
		c("TUYA", "Tuya Inc"),
	),
	group("design-cad", "Design & CAD",
		c("ADSK", "Autodesk Inc"),
		c("BSY", "Bentley Systems"),
		c("DSY-FP", "Dassault Systèmes"),
		c("HEXAB-SS", "Hexagon AB"),
		c("NEM-DE", "Nemetschek SE"),
		c("PTC", "PTC Inc"),
		c("U", "Unity Software Inc"),
	),
	group("devtools-devops", "DevTools & DevOps",
		c("DDOG", "Datadog Inc"),
		c("DT", "Dynatrace Inc"),
		c("ESTC", "Elastic NV"),
		c("FROG", "JFrog Ltd"),
		c("GTLB", "GitLab Inc"),
		c("PD", "PagerDuty Inc"),
		c("TEAM", "Atlassian Corporation"),
	),
	group("financial-software", "Financial Software",
		c("ADYEN-NA", "Adyen NV"),
		c("BILL", "Bill.com Holdings"),
		c("BR", "Broadridge Financial"),
		c("FDS", "FactSet Research Systems"),
		c("FI", "Fiserv Inc"),
		c("FLYW", "Flywire Corporation"),
		c("INTU", "Intuit Inc"),
		c("JKHY", "Jack Henry & Associates"),
		c("MSCI", "MSCI Inc"),
		c("PYPL", "PayPal Holdings"),
		c("SPGI", "S&P Global Inc"),
		c("SSNC", "SS&C Technologies"),
		c("XRO-AU", "Xero Limited"),
	),
	group("horizontal-saas", "Horizontal SaaS",
		c("ADBE", "Adobe Inc"),
		c("ASAN", "Asana Inc"),
		c("BOX", "Box Inc"),
		c("CRM", "Salesforce Inc"),
		c("DOCU", "DocuSign Inc"),
		c("FIVN", "Five9 Inc"),
		c("HUBS", "HubSpot Inc"),
		c("MNDY", "Monday.com Ltd"),
		c("NICE", "NICE Ltd"),
		c("NOW", "ServiceNow Inc"),
		c("RNG", "RingCentral Inc"),
		c("WDAY", "Workday Inc"),
		c("ZM", "Zoom Video Communications"),
	),
	group("platforms-systems", "Platforms & Systems",
		c("AKAM", "Akamai Technologies"),
		c("CFLT", "Confluent Inc"),
		c("GDDY", "GoDaddy Inc"),
		c("IBM", "International Business Machines"),
		c("MDB", "MongoDB Inc"),
		c("MSFT", "Microsoft Corporation"),
		c("NET", "Cloudflare Inc"),
		c("NTNX", "Nutanix Inc"),
		c("ORCL", "Oracle Corporation"),
		c("OTEX", "Open Text Corporation"),
		c("PRGS", "Progress Software"),
		c("SAP", "SAP SE"),
		c("SNOW", "Snowflake Inc"),
	),
	group("security", "Security",
		c("CHKP", "Check Point Software"),
		c("CRWD", "CrowdStrike Holdings"),
		c("CYBR", "CyberArk Software"),
		c("FTNT", "Fortinet Inc"),
		c("GEN", "Gen Digital Inc"),
		c("OKTA", "Okta Inc"),
		c("PANW", "Palo Alto Networks"),
		c("QLYS", "Qualys Inc"),
		c("RPD", "Rapid7 Inc"),
		c("S", "SentinelOne Inc"),
		c("TENB", "Tenable Holdings"),
		c("VRNS", "Varonis Systems"),
		c("ZS", "Zscaler Inc"),
	),
	group("vertical-saas", "Vertical SaaS",
		c("BL", "Blackline Inc"),
		c("BLKB", "Blackbaud Inc"),
		c("CCCS", "CCC Intelligent Solutions"),
		c("DOCS", "Doximity Inc"),
		c("GWRE", "Guidewire Software"),
		c("IOT", "Samsara Inc"),
		c("KXS-CA", "Kinaxis Inc"),
		c("NCNO", "nCino Inc"),
		c("PCOR", "Procore Technologies"),
		c("QTWO", "Q2 Holdings Inc"),
		c("TOST", "Toast Inc"),
		c("TYL", "Tyler Technologies"),
		c("VEEV", "Veeva Systems Inc"),
		c("WK", "Workiva Inc"),
	),
}

// Groups returns the full sector-grouped coverage universe.
func Groups() []model.CompanyGroup {
	return groups
}

// Lookup finds a company by ticker, case-insensitively.
func Lookup(ticker string) (model.Company, bool) {
	for _, g := range groups {
		for _, co := range g.Companies {
			if strings.EqualFold(co.Ticker, ticker) {
				return co, true
			}
		}
	}
	return model.Company{}, false
}
