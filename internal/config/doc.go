// Package config loads the §6 JSON config document and builds a
// *game.Game from it: default dog speed/bag capacity, the loot-generator
// config, and every declared map. Unknown fields inside a map's
// lootTypes entries are preserved verbatim by internal/model.LootType
// and echoed back unchanged on GET /api/v1/maps/{id}.
package config
