package queries

// TSDeclarations matches the TypeScript declarations the component pipeline
// cares about: functions, variables (arrow components, forwardRef/memo
// wrappers), classes, and the interface/type-alias declarations that carry
// prop records.
//
// Each pattern captures @<kind>.name and @<kind>.definition.
const TSDeclarations = `
; function Button(props: ButtonProps) { ... }
(function_declaration
  name: (identifier) @function.name
) @function.definition

; const Button = (...) => ... / const Input = forwardRef(...)
(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

; class DatePicker extends React.Component<Props> { ... }
(class_declaration
  name: (type_identifier) @class.name
) @class.definition

; type TagProps = { ... }
(type_alias_declaration
  name: (type_identifier) @type.name
) @type.definition

; interface ButtonProps { ... }
(interface_declaration
  name: (type_identifier) @interface.name
) @interface.definition
`

// JSDeclarations is the JavaScript subset: no interfaces or type aliases.
const JSDeclarations = `
(function_declaration
  name: (identifier) @function.name
) @function.definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(class_declaration
  name: (identifier) @class.name
) @class.definition
`

// TSExports matches export statements: inline declaration exports, export
// lists, and default exports by identifier.
const TSExports = `
(export_statement
  declaration: (function_declaration
    name: (identifier) @export.name
  )
)

(export_statement
  declaration: (class_declaration
    name: (type_identifier) @export.name
  )
)

(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.name
    )
  )
)

(export_statement
  declaration: (interface_declaration
    name: (type_identifier) @export.name
  )
)

(export_statement
  declaration: (type_alias_declaration
    name: (type_identifier) @export.name
  )
)

; export { Button, Card as BaseCard }
(export_specifier
  name: (identifier) @export.name
)

; export default Button
(export_statement
  value: (identifier) @export.default
)
`

// JSExports is the JavaScript subset of TSExports.
const JSExports = `
(export_statement
  declaration: (function_declaration
    name: (identifier) @export.name
  )
)

(export_statement
  declaration: (class_declaration
    name: (identifier) @export.name
  )
)

(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.name
    )
  )
)

(export_specifier
  name: (identifier) @export.name
)

(export_statement
  value: (identifier) @export.default
)
`
