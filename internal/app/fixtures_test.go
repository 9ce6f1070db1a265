package app_test

const moduleA = `
module "acme-a" {
  prefix      = "a"
  description = "System"

  container "system" {
    leaf "name" {
      type = "string"
    }
  }
}
`

// moduleB references a node acme-a does not have.
const moduleB = `
module "acme-b" {
  prefix      = "b"
  description = "Peers"

  import "acme-a" {
    prefix = "a"
  }

  container "peer" {
    leaf "ref" {
      type = "leafref"
      path = "/a:system/a:missing"
    }
  }
}
`

// moduleC is valid but produces a warning.
const moduleC = `
module "acme-c" {
  prefix = "c"

  container "clock" {
    leaf "timezone" {
      type = "string"
    }
  }
}
`

const annotA = `
annotation "annot-acme-a" {
  prefix = "ann"

  import "acme-a" {
    prefix = "a"
  }

  annotate "/a:system/a:name" {
    owner = "netops"
  }
}
`

const annotBroken = `
annotation "annot-acme-a" {
  prefix = "ann"

  import "acme-a" {
    prefix = "a"
  }

  annotate "/a:system/a:nothing" {
    owner = "netops"
  }
}
`
