package state

import (
	"go.minekube.com/bot/pkg/edition/java/proto"
	p "go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// Play is the play state table.
// https://wiki.vg/index.php?title=Protocol&oldid=6003
var Play = NewRegistry(proto.PlayState,
	cb[p.KeepAlive](0x00),
	cb[p.JoinGame](0x01),
	cb[p.Chat](0x02),
	cb[p.TimeUpdate](0x03),
	cb[p.EntityEquipment](0x04),
	cb[p.SpawnPosition](0x05),
	cb[p.UpdateHealth](0x06),
	cb[p.Respawn](0x07),
	cb[p.PlayerPosLook](0x08),
	cb[p.HeldItemChange](0x09),
	cb[p.UseBed](0x0A),
	cb[p.Animation](0x0B),
	cb[p.SpawnPlayer](0x0C),
	cb[p.CollectItem](0x0D),
	cb[p.SpawnObject](0x0E),
	cb[p.SpawnMob](0x0F),
	cb[p.SpawnPainting](0x10),
	cb[p.SpawnExperienceOrb](0x11),
	cb[p.EntityVelocity](0x12),
	cb[p.DestroyEntities](0x13),
	cb[p.Entity](0x14),
	cb[p.EntityRelMove](0x15),
	cb[p.EntityLook](0x16),
	cb[p.EntityLookAndRelMove](0x17),
	cb[p.EntityTeleport](0x18),
	cb[p.EntityHeadLook](0x19),
	cb[p.EntityStatus](0x1A),
	cb[p.AttachEntity](0x1B),
	cb[p.EntityMetadata](0x1C),
	cb[p.EntityEffect](0x1D),
	cb[p.RemoveEntityEffect](0x1E),
	cb[p.SetExperience](0x1F),
	cb[p.EntityProperties](0x20),
	cb[p.ChunkData](0x21),
	cb[p.MultiBlockChange](0x22),
	cb[p.BlockChange](0x23),
	cb[p.BlockAction](0x24),
	cb[p.BlockBreakAnimation](0x25),
	cb[p.MapChunkBulk](0x26),
	cb[p.Explosion](0x27),
	cb[p.Effect](0x28),
	cb[p.SoundEffect](0x29),
	cb[p.Particle](0x2A),
	cb[p.ChangeGameState](0x2B),
	cb[p.SpawnGlobalEntity](0x2C),
	cb[p.OpenWindow](0x2D),
	cb[p.CloseWindow](0x2E),
	cb[p.SetSlot](0x2F),
	cb[p.WindowItems](0x30),
	cb[p.WindowProperty](0x31),
	cb[p.ConfirmTransaction](0x32),
	cb[p.UpdateSign](0x33),
	cb[p.Maps](0x34),
	cb[p.UpdateTileEntity](0x35),
	cb[p.SignEditorOpen](0x36),
	cb[p.Statistics](0x37),
	cb[p.PlayerListItem](0x38),
	cb[p.PlayerAbilities](0x39),
	cb[p.TabComplete](0x3A),
	cb[p.ScoreboardObjective](0x3B),
	cb[p.UpdateScore](0x3C),
	cb[p.DisplayScoreboard](0x3D),
	cb[p.Teams](0x3E),
	cb[p.PluginMessage](0x3F),
	cb[p.Disconnect](0x40),

	sb[p.KeepAlive](0x00),
	sb[p.Chat](0x01),
	sb[p.UseEntity](0x02),
	sb[p.ClientOnGround](0x03),
	sb[p.ClientPosition](0x04),
	sb[p.ClientLook](0x05),
	sb[p.ClientPosLook](0x06),
	sb[p.PlayerDigging](0x07),
	sb[p.BlockPlacement](0x08),
	sb[p.ClientHeldItemChange](0x09),
	sb[p.ClientAnimation](0x0A),
	sb[p.EntityAction](0x0B),
	sb[p.SteerVehicle](0x0C),
	sb[p.CloseWindow](0x0D),
	sb[p.ClickWindow](0x0E),
	sb[p.ConfirmTransaction](0x0F),
	sb[p.CreativeInventoryAction](0x10),
	sb[p.EnchantItem](0x11),
	sb[p.UpdateSign](0x12),
	sb[p.PlayerAbilities](0x13),
	sb[p.TabCompleteRequest](0x14),
	sb[p.ClientSettings](0x15),
	sb[p.ClientStatus](0x16),
	sb[p.PluginMessage](0x17),
)
