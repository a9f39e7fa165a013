// Package config loads the etcd-cleaner configuration.
//
// Configuration is optional. Without a file every setting takes the value
// in DefaultConfig, which matches a kops-style AWS cluster running Calico
// with an etcd v2 datastore in kube-system.
//
// The file is read from $ETCD_CLEANER_CONFIG when set, otherwise from
// ~/.config/etcd-cleaner/config.yaml:
//
//	namespace: kube-system
//	agent:
//	  podPattern: '^calico-node-[a-zA-Z0-9]{5}$'
//	  container: calico-node
//	  hostnameCommand: [sh, -c, hostname]
//	store:
//	  podPattern: '^etcd-server-ip.*'
//	  binary: etcdctl
//	prefixes:
//	  - /calico/v1/host/
//	  - /calico/bgp/v1/host/
//	  - /calico/ipam/v2/host/
//	dnsDomain: ap-northeast-1.compute.internal
//	commandTimeout: 30s
//	listConcurrency: 1
//	logLevel: info
//
// Fields left out of the file keep their defaults. $ETCD_CLEANER_LOG_LEVEL
// overrides logLevel.
package config
