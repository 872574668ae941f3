package symbols

import "strings"

// Company is a registry entry for a known listed company. BasePrice and
// MarketCap anchor synthetic data in the company's native currency.
type Company struct {
	Symbol      string
	Name        string
	Exchange    string
	Sector      string
	Industry    string
	BasePrice   float64
	MarketCap   int64
	Description string
}

// registry covers the large caps the dashboard is most likely to be
// asked about. Unknown symbols still work everywhere; they just get
// fully derived synthetic values.
var registry = []Company{
	{Symbol: "NSE:RELIANCE", Name: "Reliance Industries Ltd", Exchange: "NSE", Sector: "Energy", Industry: "Oil & Gas Refining", BasePrice: 1428.50, MarketCap: 19_330_000_000_000, Description: "India's largest private sector company with businesses across energy, petrochemicals, retail, telecom and digital services."},
	{Symbol: "NSE:TCS", Name: "Tata Consultancy Services Ltd", Exchange: "NSE", Sector: "Technology", Industry: "IT Services", BasePrice: 3942.00, MarketCap: 14_260_000_000_000, Description: "Global IT services, consulting and business solutions organization, part of the Tata group."},
	{Symbol: "NSE:INFY", Name: "Infosys Ltd", Exchange: "NSE", Sector: "Technology", Industry: "IT Services", BasePrice: 1558.75, MarketCap: 6_470_000_000_000, Description: "Global leader in next-generation digital services and consulting headquartered in Bengaluru."},
	{Symbol: "NSE:HDFCBANK", Name: "HDFC Bank Ltd", Exchange: "NSE", Sector: "Financial Services", Industry: "Private Banks", BasePrice: 1687.30, MarketCap: 12_900_000_000_000, Description: "India's largest private sector bank by assets, offering retail and wholesale banking services."},
	{Symbol: "NSE:ICICIBANK", Name: "ICICI Bank Ltd", Exchange: "NSE", Sector: "Financial Services", Industry: "Private Banks", BasePrice: 1234.60, MarketCap: 8_680_000_000_000, Description: "Leading private sector bank in India with a network across retail, corporate and investment banking."},
	{Symbol: "NSE:SBIN", Name: "State Bank of India", Exchange: "NSE", Sector: "Financial Services", Industry: "Public Banks", BasePrice: 824.15, MarketCap: 7_350_000_000_000, Description: "India's largest public sector bank serving over 48 crore customers."},
	{Symbol: "NSE:BHARTIARTL", Name: "Bharti Airtel Ltd", Exchange: "NSE", Sector: "Telecommunication", Industry: "Telecom Services", BasePrice: 1592.40, MarketCap: 9_550_000_000_000, Description: "Global communications company operating in 18 countries across South Asia and Africa."},
	{Symbol: "NSE:ITC", Name: "ITC Ltd", Exchange: "NSE", Sector: "Consumer Goods", Industry: "Diversified FMCG", BasePrice: 443.85, MarketCap: 5_540_000_000_000, Description: "Diversified conglomerate with presence in FMCG, hotels, paperboards, packaging and agri-business."},
	{Symbol: "NSE:WIPRO", Name: "Wipro Ltd", Exchange: "NSE", Sector: "Technology", Industry: "IT Services", BasePrice: 487.20, MarketCap: 2_550_000_000_000, Description: "Leading technology services and consulting company focused on digital transformation."},
	{Symbol: "NSE:LT", Name: "Larsen & Toubro Ltd", Exchange: "NSE", Sector: "Industrials", Industry: "Construction & Engineering", BasePrice: 3618.90, MarketCap: 4_980_000_000_000, Description: "Indian multinational engaged in EPC projects, hi-tech manufacturing and services."},
	{Symbol: "NSE:TATAMOTORS", Name: "Tata Motors Ltd", Exchange: "NSE", Sector: "Automobile", Industry: "Passenger & Commercial Vehicles", BasePrice: 952.70, MarketCap: 3_500_000_000_000, Description: "Automobile manufacturer producing cars, utility vehicles, trucks and buses, owner of Jaguar Land Rover."},
	{Symbol: "NSE:ASIANPAINT", Name: "Asian Paints Ltd", Exchange: "NSE", Sector: "Consumer Goods", Industry: "Paints", BasePrice: 2356.10, MarketCap: 2_260_000_000_000, Description: "India's leading paint company and the third largest in Asia."},
	{Symbol: "NSE:MARUTI", Name: "Maruti Suzuki India Ltd", Exchange: "NSE", Sector: "Automobile", Industry: "Passenger Vehicles", BasePrice: 12486.00, MarketCap: 3_920_000_000_000, Description: "India's largest passenger car maker, a subsidiary of Suzuki Motor Corporation."},
	{Symbol: "NSE:SUNPHARMA", Name: "Sun Pharmaceutical Industries Ltd", Exchange: "NSE", Sector: "Healthcare", Industry: "Pharmaceuticals", BasePrice: 1748.25, MarketCap: 4_190_000_000_000, Description: "World's fourth largest specialty generic pharmaceutical company."},
	{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", Sector: "Technology", Industry: "Consumer Electronics", BasePrice: 232.80, MarketCap: 3_520_000_000_000, Description: "Designs, manufactures and markets smartphones, personal computers, tablets, wearables and accessories."},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", Sector: "Technology", Industry: "Software", BasePrice: 424.50, MarketCap: 3_160_000_000_000, Description: "Develops and supports software, services, devices and solutions including Azure, Office and Windows."},
	{Symbol: "GOOGL", Name: "Alphabet Inc", Exchange: "NASDAQ", Sector: "Technology", Industry: "Internet Services", BasePrice: 176.30, MarketCap: 2_180_000_000_000, Description: "Holding company of Google, offering search, advertising, cloud computing and consumer platforms."},
	{Symbol: "AMZN", Name: "Amazon.com Inc", Exchange: "NASDAQ", Sector: "Consumer Cyclical", Industry: "Internet Retail", BasePrice: 186.40, MarketCap: 1_960_000_000_000, Description: "Engages in retail sale of consumer products, advertising and subscription services, and cloud computing through AWS."},
	{Symbol: "TSLA", Name: "Tesla Inc", Exchange: "NASDAQ", Sector: "Automobile", Industry: "Electric Vehicles", BasePrice: 251.90, MarketCap: 800_000_000_000, Description: "Designs, develops, manufactures and sells electric vehicles and energy generation and storage systems."},
	{Symbol: "META", Name: "Meta Platforms Inc", Exchange: "NASDAQ", Sector: "Technology", Industry: "Social Media", BasePrice: 563.20, MarketCap: 1_430_000_000_000, Description: "Builds technologies that help people connect, including Facebook, Instagram and WhatsApp."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "NASDAQ", Sector: "Technology", Industry: "Semiconductors", BasePrice: 136.70, MarketCap: 3_350_000_000_000, Description: "Designs graphics processing units and accelerated computing platforms for gaming, data centers and AI."},
	{Symbol: "NFLX", Name: "Netflix Inc", Exchange: "NASDAQ", Sector: "Communication Services", Industry: "Entertainment", BasePrice: 684.10, MarketCap: 295_000_000_000, Description: "Provides entertainment services with TV series, films and games across a wide variety of genres and languages."},
}

var registryIndex = buildIndex()

func buildIndex() map[string]*Company {
	idx := make(map[string]*Company, len(registry))
	for i := range registry {
		idx[registry[i].Symbol] = &registry[i]
	}
	return idx
}

// Lookup finds a registry entry by qualified symbol.
func Lookup(symbol string) (Company, bool) {
	if c, ok := registryIndex[Normalize(symbol)]; ok {
		return *c, true
	}
	return Company{}, false
}

// Search scans the registry for symbols or names containing the query,
// case-insensitively. An empty query matches nothing.
func Search(query string) []Company {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var hits []Company
	for _, c := range registry {
		if strings.Contains(c.Symbol, q) || strings.Contains(strings.ToUpper(c.Name), q) {
			hits = append(hits, c)
		}
	}
	return hits
}

// All returns a copy of the full registry.
func All() []Company {
	out := make([]Company, len(registry))
	copy(out, registry)
	return out
}
