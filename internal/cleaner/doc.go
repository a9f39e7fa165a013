// Package cleaner runs one maintenance pass over the Calico etcd registry.
//
// A pass has four stages, each returning a value consumed by the next:
//
//  1. MembershipLister execs the hostname command in every calico-node pod.
//  2. RegistryLister picks the first etcd server pod and lists every prefix.
//  3. registry.Engine turns both listings into a Plan.
//  4. In apply mode, Applier deletes each candidate with
//     "etcdctl rm --recursive <key>", one at a time.
//
// Cleaner.Run composes the stages. Stages never terminate the process:
// every fatal condition is returned as a *FatalError and the caller decides
// the exit status.
//
// A failed delete does not stop the remaining deletes. Each outcome is
// reported and the pass as a whole fails afterwards. A delete that finds the
// key already gone counts as a success.
package cleaner
