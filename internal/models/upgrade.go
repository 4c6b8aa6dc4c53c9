package models

// ClientSchemaVersion is the current client record layout.
//
//	0: rows written before country and client type existed
//	1: country and client type always set
const ClientSchemaVersion = 1

// UpgradeClient brings a client loaded from storage to the current schema.
// It reports whether anything changed. It is the only place where defaults for
// missing client fields are decided.
func UpgradeClient(c *Client) bool {
	if c.SchemaVersion >= ClientSchemaVersion {
		return false
	}
	if c.SchemaVersion < 1 {
		if normalizeCountry(c.Country) == "" {
			c.Country = DefaultCountry
		}
		if c.Type == "" {
			c.Type = ClientTypeCompany
		}
	}
	c.Country = normalizeCountry(c.Country)
	c.SchemaVersion = ClientSchemaVersion
	return true
}
