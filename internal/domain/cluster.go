package domain

// Cluster is a named group (server/domain) a User may belong to. It has no
// lifecycle of its own beyond existing as a foreign-key target; deleting one
// detaches its users rather than cascading.
type Cluster struct {
	ClusterID string `gorm:"size:50;primaryKey;column:cluster_id" json:"clusterId"`

	Users []User `gorm:"foreignKey:ClusterID" json:"-"`
}

func (Cluster) TableName() string { return "clusters" }
